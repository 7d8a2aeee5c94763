package cncport

import (
	"slices"
	"testing"
)

func TestRelayCommandArgs(t *testing.T) {
	tests := []struct {
		name string
		cmd  RelayCommand
		want []string
	}{
		{
			name: "single replica",
			cmd: RelayCommand{
				ExePath:  `C:\Program Files (x86)\com0com\hub4com.exe`,
				Baud:     115200,
				Source:   "COM3",
				Replicas: []string{"COM5"},
			},
			want: []string{
				`C:\Program Files (x86)\com0com\hub4com.exe`,
				"--octs=off",
				"--baud=115200",
				"--bi-route=0:All",
				`\\.\COM3`,
				`\\.\COM5`,
			},
		},
		{
			name: "multiple replicas",
			cmd: RelayCommand{
				ExePath:  `hub4com.exe`,
				Baud:     9600,
				Source:   "COM1",
				Replicas: []string{"COM5", "COM7", "COM9"},
			},
			want: []string{
				"hub4com.exe",
				"--octs=off",
				"--baud=9600",
				"--bi-route=0:All",
				`\\.\COM1`,
				`\\.\COM5`,
				`\\.\COM7`,
				`\\.\COM9`,
			},
		},
		{
			name: "no replicas",
			cmd:  RelayCommand{ExePath: "hub4com.exe", Baud: 300, Source: "COM2"},
			want: []string{
				"hub4com.exe",
				"--octs=off",
				"--baud=300",
				"--bi-route=0:All",
				`\\.\COM2`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cmd.Args()
			if !slices.Equal(got, tt.want) {
				t.Errorf("Args() = %q, want %q", got, tt.want)
			}
		})
	}
}
