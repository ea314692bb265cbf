package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestUnitFromCgroupPaths(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{
			name:  "SimpleSystemServiceV2",
			paths: []string{"/system.slice/ssh.service"},
			want:  "ssh.service",
		},
		{
			name:  "SimpleSystemServiceV1",
			paths: []string{"/", "/system.slice/nginx.service"},
			want:  "nginx.service",
		},
		{
			name:  "UserServicePrefersAppOverUserManager",
			paths: []string{"/user.slice/user-1000.slice/user@1000.service/app.slice/emacs.service"},
			want:  "emacs.service",
		},
		{
			name:  "OnlyUserManagerService",
			paths: []string{"/user.slice/user-1000.slice/user@1000.service"},
			want:  "user@1000.service",
		},
		{
			name:  "NoServiceUnit",
			paths: []string{"/user.slice/user-1000.slice/session-2.scope"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unitFromCgroupPaths(tt.paths); got != tt.want {
				t.Fatalf("unitFromCgroupPaths()=%q, want %q", got, tt.want)
			}
		})
	}
}

func TestCgroupQuerierUnit(t *testing.T) {
	root := t.TempDir()
	writeCgroup(t, root, "100", "0::/system.slice/cups.service\n")
	writeCgroup(t, root, "200", "12:pids:/user.slice\n1:name=systemd:/user.slice/user-1000.slice/user@1000.service/app.slice/foot.service\n")
	writeCgroup(t, root, "300", "0::/init.scope\n")

	q, err := NewCgroupQuerier(root)
	if err != nil {
		t.Fatalf("NewCgroupQuerier: %v", err)
	}

	tests := []struct {
		pid  string
		want string
	}{
		{"100", "cups.service"},
		{"200", "foot.service"},
		{"300", ""},
		{"400", ""},
		{"nope", ""},
	}

	for _, tt := range tests {
		t.Run(tt.pid, func(t *testing.T) {
			got, err := q.Unit(context.Background(), tt.pid)
			if err != nil {
				t.Fatalf("Unit(%s) error: %v", tt.pid, err)
			}
			if got != tt.want {
				t.Fatalf("Unit(%s)=%q, want %q", tt.pid, got, tt.want)
			}
		})
	}
}

func TestNewCgroupQuerierMissingRoot(t *testing.T) {
	if _, err := NewCgroupQuerier(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected an error for a missing proc root")
	}
}

func writeCgroup(t *testing.T, root, pid, content string) {
	t.Helper()

	dir := filepath.Join(root, pid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "cgroup"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
