//go:build windows

package cncport

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

func defaultDeviceQuery() DeviceQuery { return systemDeviceQuery{} }

// devPropKey identifies a PnP device property (DEVPROPKEY)
type devPropKey struct {
	fmtID windows.GUID
	pid   uint32
}

// DEVPROP type identifiers for the property values read here
const (
	devpropTypeString     = 0x00000012
	devpropTypeStringList = 0x00002012 // string | typemod list
	devpropTypeUint32     = 0x00000007
)

// Well-known DEVPROPKEYs from devpkey.h
var (
	guidDeviceProps = windows.GUID{Data1: 0xa45c254e, Data2: 0xdf1c, Data3: 0x4efd,
		Data4: [8]byte{0x80, 0x20, 0x67, 0xd1, 0x46, 0xa8, 0x50, 0xe0}}
	guidDeviceRelations = windows.GUID{Data1: 0x4340a6c5, Data2: 0x93fa, Data3: 0x4706,
		Data4: [8]byte{0x97, 0x2c, 0x7b, 0x64, 0x80, 0x08, 0xa5, 0xa7}}

	devpkeyDeviceDesc   = devPropKey{fmtID: guidDeviceProps, pid: 2}
	devpkeyClass        = devPropKey{fmtID: guidDeviceProps, pid: 9}
	devpkeyLocationInfo = devPropKey{fmtID: guidDeviceProps, pid: 15}

	devpkeyProblemCode = devPropKey{fmtID: guidDeviceRelations, pid: 3}
	devpkeyParent      = devPropKey{fmtID: guidDeviceRelations, pid: 8}
	devpkeySiblings    = devPropKey{fmtID: guidDeviceRelations, pid: 10}

	devpkeyName = devPropKey{fmtID: windows.GUID{Data1: 0xb725f130, Data2: 0x47ef, Data3: 0x101a,
		Data4: [8]byte{0xa5, 0xf1, 0x02, 0x60, 0x8c, 0x9e, 0xeb, 0xac}}, pid: 10}

	devpkeyInstanceID = devPropKey{fmtID: windows.GUID{Data1: 0x78c34fc8, Data2: 0x104a, Data3: 0x4aca,
		Data4: [8]byte{0x9e, 0xa4, 0x52, 0x4d, 0x52, 0x99, 0x6e, 0x57}}, pid: 256}

	devpkeyDriverDesc = devPropKey{fmtID: windows.GUID{Data1: 0xa8b865dd, Data2: 0x2e3d, Data3: 0x4094,
		Data4: [8]byte{0xad, 0x97, 0xe5, 0x93, 0xa7, 0x0c, 0x75, 0xd6}}, pid: 2}
)

// queriedProps maps each exported property key to the DEVPROPKEY it is
// read from
var queriedProps = []struct {
	key     string
	propKey *devPropKey
}{
	{PropClass, &devpkeyClass},
	{PropInstanceID, &devpkeyInstanceID},
	{PropLocationInfo, &devpkeyLocationInfo},
	{PropName, &devpkeyName},
	{PropParent, &devpkeyParent},
	{PropSiblings, &devpkeySiblings},
	{PropDeviceDesc, &devpkeyDeviceDesc},
	{PropDriverDesc, &devpkeyDriverDesc},
}

// x/sys/windows wraps most of SetupAPI but has no decoder for DEVPROP
// string-list values (needed for the sibling list), so the one property
// getter goes through the DLL directly.
var (
	modsetupapi                   = windows.NewLazySystemDLL("setupapi.dll")
	procSetupDiGetDevicePropertyW = modsetupapi.NewProc("SetupDiGetDevicePropertyW")
)

// systemDeviceQuery enumerates all present PnP devices via SetupAPI
type systemDeviceQuery struct{}

func (systemDeviceQuery) Devices() ([]RawDevice, error) {
	devInfo, err := windows.SetupDiGetClassDevsEx(nil, "", 0,
		windows.DIGCF_ALLCLASSES|windows.DIGCF_PRESENT, 0, "")
	if err != nil {
		return nil, fmt.Errorf("SetupDiGetClassDevsEx: %w", err)
	}
	defer devInfo.Close()

	var devices []RawDevice
	for i := 0; ; i++ {
		data, err := devInfo.EnumDeviceInfo(i)
		if err != nil {
			if errors.Is(err, windows.ERROR_NO_MORE_ITEMS) {
				break
			}
			return nil, fmt.Errorf("SetupDiEnumDeviceInfo: %w", err)
		}

		if !deviceHealthy(devInfo, data) {
			continue
		}

		// Properties are read while the device info set is still
		// open; the returned records outlive the handle
		entries, err := readDeviceProperties(devInfo, data)
		devices = append(devices, &queriedDevice{entries: entries, err: err})
	}
	return devices, nil
}

// queriedDevice is a RawDevice whose properties were captured during the
// enumeration pass
type queriedDevice struct {
	entries []RawProperty
	err     error
}

func (d *queriedDevice) ReadProperties() ([]RawProperty, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.entries, nil
}

// deviceHealthy reports whether the device has no recorded PnP problem.
// A device with no readable problem code is treated as healthy.
func deviceHealthy(devInfo windows.DevInfo, data *windows.DevInfoData) bool {
	code, err := getDevicePropertyUint32(devInfo, data, &devpkeyProblemCode)
	if err != nil {
		return true
	}
	return code == 0
}

func readDeviceProperties(devInfo windows.DevInfo, data *windows.DevInfoData) ([]RawProperty, error) {
	var entries []RawProperty
	for _, q := range queriedProps {
		values, err := getDevicePropertyStrings(devInfo, data, q.propKey)
		if err != nil {
			if errors.Is(err, windows.ERROR_NOT_FOUND) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", q.key, err)
		}
		entries = append(entries, RawProperty{Key: q.key, Data: values})
	}
	return entries, nil
}

// getDeviceProperty reads a raw property value, returning its DEVPROP type
// and payload
func getDeviceProperty(devInfo windows.DevInfo, data *windows.DevInfoData, key *devPropKey) (uint32, []byte, error) {
	var propType, size uint32
	r, _, e := procSetupDiGetDevicePropertyW.Call(
		uintptr(devInfo),
		uintptr(unsafe.Pointer(data)),
		uintptr(unsafe.Pointer(key)),
		uintptr(unsafe.Pointer(&propType)),
		0,
		0,
		uintptr(unsafe.Pointer(&size)),
		0)
	if r == 0 && !errors.Is(e, windows.ERROR_INSUFFICIENT_BUFFER) {
		return 0, nil, e
	}
	if size == 0 {
		return propType, nil, nil
	}

	buf := make([]byte, size)
	r, _, e = procSetupDiGetDevicePropertyW.Call(
		uintptr(devInfo),
		uintptr(unsafe.Pointer(data)),
		uintptr(unsafe.Pointer(key)),
		uintptr(unsafe.Pointer(&propType)),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(size),
		uintptr(unsafe.Pointer(&size)),
		0)
	if r == 0 {
		return 0, nil, e
	}
	return propType, buf, nil
}

// getDevicePropertyStrings reads a string or string-list property as a
// flat slice of strings
func getDevicePropertyStrings(devInfo windows.DevInfo, data *windows.DevInfoData, key *devPropKey) ([]string, error) {
	propType, buf, err := getDeviceProperty(devInfo, data, key)
	if err != nil {
		return nil, err
	}

	switch propType {
	case devpropTypeString:
		return []string{windows.UTF16ToString(bytesToUTF16(buf))}, nil
	case devpropTypeStringList:
		return splitStringList(bytesToUTF16(buf)), nil
	default:
		return nil, fmt.Errorf("unexpected property type 0x%x", propType)
	}
}

func getDevicePropertyUint32(devInfo windows.DevInfo, data *windows.DevInfoData, key *devPropKey) (uint32, error) {
	propType, buf, err := getDeviceProperty(devInfo, data, key)
	if err != nil {
		return 0, err
	}
	if propType != devpropTypeUint32 || len(buf) < 4 {
		return 0, fmt.Errorf("unexpected property type 0x%x", propType)
	}
	return *(*uint32)(unsafe.Pointer(&buf[0])), nil
}

func bytesToUTF16(buf []byte) []uint16 {
	if len(buf) < 2 {
		return nil
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(&buf[0])), len(buf)/2)
}

// splitStringList decodes a REG_MULTI_SZ style double-NUL-terminated list
func splitStringList(u []uint16) []string {
	var values []string
	start := 0
	for i, c := range u {
		if c != 0 {
			continue
		}
		if i > start {
			values = append(values, windows.UTF16ToString(u[start:i]))
		}
		start = i + 1
	}
	return values
}
