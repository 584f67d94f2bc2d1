//go:build linux

package host

import (
	"context"
	"os"
	"testing"

	gopsutil "github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostmetrics/pkg/collector/virt"
	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
	"github.com/NVIDIA/hostmetrics/pkg/measurement"
)

func fixtureCollector(t *testing.T) (*Collector, hostfs.FS) {
	t.Helper()
	fs := hostfs.Under(t.TempDir())
	writeFile(t, fs.EtcPath("os-release"), "PRETTY_NAME=\"Ubuntu 24.04.1 LTS\"\n")
	writeFile(t, fs.EtcPath("machine-id"), "4c4c4544004e3510804bb4c04f575032\n")
	writeFile(t, fs.EtcPath("passwd"), passwd)
	writeFile(t, fs.RootPath(".dockerenv"), "")

	var utmp []byte
	utmp = append(utmp, utmpRecord(utmpUserProcess, "alice")...)
	utmp = append(utmp, utmpRecord(utmpUserProcess, "alice")...)
	utmp = append(utmp, utmpRecord(utmpUserProcess, "bob")...)
	writeFile(t, fs.RunPath("utmp"), string(utmp))

	c := NewCollector(WithFS(fs))
	c.uname = func() (utsname, error) {
		return utsname{sysname: "Linux", nodename: "node-1", release: "6.8.0-1028-aws"}, nil
	}
	return c, fs
}

func TestIdentityFromFixture(t *testing.T) {
	c, _ := fixtureCollector(t)

	id, err := c.Identity()
	require.NoError(t, err)
	assert.Equal(t, Identity{
		System:        "Linux",
		OSVersion:     "Ubuntu 24.04.1 LTS",
		KernelVersion: "6.8.0-1028-aws",
		Hostname:      "node-1",
		UUID:          "4c4c4544004e3510804bb4c04f575032",
	}, id)

	k, err := id.Kernel()
	require.NoError(t, err)
	assert.Equal(t, 6, k.Major)
	assert.Equal(t, 8, k.Minor)
}

func TestIdentityFallsThrough(t *testing.T) {
	c := NewCollector(WithFS(hostfs.Under(t.TempDir())))
	c.uname = func() (utsname, error) {
		return utsname{sysname: "Linux", nodename: "bare", release: "6.1.0"}, nil
	}

	id, err := c.Identity()
	require.NoError(t, err)
	assert.Equal(t, "Linux 6.1.0", id.OSVersion)
	assert.Empty(t, id.UUID)
}

func TestIdentityUnameFailure(t *testing.T) {
	c := NewCollector(WithFS(hostfs.Under(t.TempDir())))
	c.uname = func() (utsname, error) {
		return utsname{}, errors.OSCall("uname", os.ErrPermission)
	}

	_, err := c.Identity()
	assert.True(t, errors.IsCode(err, errors.ErrCodeOSCall))
}

func TestUsersAndLoggedUsers(t *testing.T) {
	c, _ := fixtureCollector(t)

	users, err := c.Users()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Name)

	logged, err := c.LoggedUsers()
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, logged)
}

func TestLoggedUsersLogindFallback(t *testing.T) {
	c := NewCollector(WithFS(hostfs.Under(t.TempDir())))
	called := false
	c.platform.(*linuxPlatform).sessionUsers = func() ([]string, error) {
		called = true
		return []string{"carol", "carol", "dave"}, nil
	}

	logged, err := c.LoggedUsers()
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, []string{"carol", "dave"}, logged)
}

func TestLoggedUsersMalformedUtmpNoFallback(t *testing.T) {
	fs := hostfs.Under(t.TempDir())
	writeFile(t, fs.RunPath("utmp"), "short")

	c := NewCollector(WithFS(fs))
	c.platform.(*linuxPlatform).sessionUsers = func() ([]string, error) {
		t.Fatal("logind must not be asked when utmp exists")
		return nil, nil
	}

	_, err := c.LoggedUsers()
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformed))
}

func TestCollectTruncatedUtmp(t *testing.T) {
	c, fs := fixtureCollector(t)
	writeFile(t, fs.RunPath("utmp"), string(utmpRecord(utmpUserProcess, "alice")[:100]))

	_, err := c.Collect(t.Context())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformed), "got %v", err)
}

func TestCollectWithoutSessionSource(t *testing.T) {
	c, fs := fixtureCollector(t)
	require.NoError(t, os.Remove(fs.RunPath("utmp")))
	c.platform.(*linuxPlatform).sessionUsers = func() ([]string, error) {
		return nil, errors.New(errors.ErrCodeNotFound, "no utmp and logind unreachable")
	}

	m, err := c.Collect(t.Context())
	require.NoError(t, err)
	users := m.GetSubtype("users")
	require.NotNil(t, users)
	_, ok := users.Data[measurement.KeyLoggedIn]
	assert.False(t, ok)
}

func TestCollectFromFixture(t *testing.T) {
	c, _ := fixtureCollector(t)

	m, err := c.Collect(t.Context())
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Equal(t, measurement.TypeHost, m.Type)
	assert.Equal(t, []string{"identity", "uptime", "users"}, m.SubtypeNames())

	id := m.GetSubtype("identity")
	host, err := id.GetString(measurement.KeyHostname)
	require.NoError(t, err)
	assert.Equal(t, "node-1", host)
	v, err := id.GetString(measurement.KeyVirtSystem)
	require.NoError(t, err)
	assert.Equal(t, virt.Docker.String(), v)
	assert.Equal(t, measurement.Int(6), id.Get(measurement.KeyKernelMajor))

	users := m.GetSubtype("users")
	logged, err := users.GetString(measurement.KeyLoggedIn)
	require.NoError(t, err)
	assert.Equal(t, "alice,bob", logged)
	assert.Equal(t, measurement.Int(2), users.Get(measurement.KeyUsers))
}

func TestCollectCanceled(t *testing.T) {
	c, _ := fixtureCollector(t)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := c.Collect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLiveHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live host test in short mode")
	}

	c := NewCollector()
	info, err := c.Info()
	require.NoError(t, err)

	want, err := gopsutil.Info()
	require.NoError(t, err)

	assert.Equal(t, want.Hostname, info.Hostname)
	assert.Equal(t, want.KernelVersion, info.KernelVersion)
	assert.InDelta(t, want.Uptime, info.Uptime, 5)
}
