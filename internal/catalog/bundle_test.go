package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBundle_IsProjectName(t *testing.T) {
	b := NewBundle("Stratum", "master")

	tests := []struct {
		name string
		want bool
	}{
		{"Stratum-128x", true},
		{"Stratum-2048x", true},
		{"Stratum-abcx", false},
		{"OtherThing-16x", false},
		{"stratum-128x", false},
		{"Stratum-128x-extras", false},
		{"Stratum-128", false},
		{"Stratum-x", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.IsProjectName(tt.name))
		})
	}
}

func TestBundle_IsInstalledBundleDirectory(t *testing.T) {
	b := NewBundle("Stratum", "master")

	tests := []struct {
		name string
		want bool
	}{
		{"Stratum-128x-master", true},
		{"Stratum-256x-master-3f9a1c0d", true},
		{"stratum-512X-MASTER-old", true},
		{"Stratum-128x-master-old", true},
		{"Stratum-128x", false},
		{"Stratum-128x-develop", false},
		{"Stratum-128x-master.zip", false},
		{"Stratum-128x-master-a-b", false},
		{"Faithful-32x-master", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.IsInstalledBundleDirectory(tt.name))
		})
	}
}

func TestBundle_Names(t *testing.T) {
	b := NewBundle("Stratum", "master")
	e := Entry{ID: 7, Name: "Stratum-256x"}

	assert.Equal(t, "Stratum-256x-master", b.InstallDirName(e))
	assert.Equal(t, "Stratum-256x-master.zip", b.ArchiveName(e))
	assert.True(t, b.IsArchiveName(b.ArchiveName(e)))
	assert.False(t, b.IsArchiveName("Stratum-256x-master-old.zip"))
	assert.True(t, b.IsInstalledBundleDirectory(b.InstallDirName(e)))
}

func TestBundle_QuotesMetacharacters(t *testing.T) {
	b := NewBundle("Pack.v2", "main")

	assert.True(t, b.IsProjectName("Pack.v2-64x"))
	assert.False(t, b.IsProjectName("PackXv2-64x"))
}

func TestEntry_Tier(t *testing.T) {
	assert.Equal(t, 256, Entry{Name: "Stratum-256x"}.Tier())
	assert.Equal(t, 0, Entry{Name: "Stratum"}.Tier())
	assert.Equal(t, 0, Entry{Name: "Stratum-abcx"}.Tier())
}

func TestArchiveURL(t *testing.T) {
	assert.Equal(t,
		"https://dl.continuum.graphics/api/v4/projects/42/repository/archive.zip",
		ArchiveURL("https://dl.continuum.graphics/", 42))
}
