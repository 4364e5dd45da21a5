package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewBuild_Activation(t *testing.T) {
	tests := []struct {
		command string
		want    map[string]bool
	}{
		{CommandBuild, map[string]bool{"build": true, "check": false}},
		{CommandCheck, map[string]bool{"build": true, "check": true}},
		{"install", map[string]bool{"build": false, "check": false, "install": true}},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			b := NewBuild(FromTargets(), tt.command)
			if diff := cmp.Diff(tt.want, b.Commands()); diff != "" {
				t.Errorf("Commands() mismatch (-want +got):\n%s", diff)
			}
			if b.Active("unknown") {
				t.Error("Active(unknown) = true")
			}
		})
	}
}

func TestBuild_PostFuns(t *testing.T) {
	b := NewBuild(FromTargets(), CommandCheck)
	var calls []int
	for i := 1; i <= 3; i++ {
		b.AddPostFun(func() { calls = append(calls, i) })
	}

	b.RunPostFuns()

	if diff := cmp.Diff([]int{1, 2, 3}, calls); diff != "" {
		t.Errorf("post funs order mismatch (-want +got):\n%s", diff)
	}
}
