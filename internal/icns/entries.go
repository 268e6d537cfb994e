// Package icns stages a macOS iconset from one PNG and bundles it into an
// .icns container.
package icns

import (
	"path/filepath"
	"strings"
)

type Entry struct {
	Size int
	Name string
}

func (e Entry) FileName() string {
	return e.Name + ".png"
}

// Entries is the iconset layout iconutil expects. Each @2x entry shares its
// pixel size with the next larger 1x entry but is written as its own file.
var Entries = []Entry{
	{Size: 16, Name: "icon_16x16"},
	{Size: 32, Name: "icon_16x16@2x"},
	{Size: 32, Name: "icon_32x32"},
	{Size: 64, Name: "icon_32x32@2x"},
	{Size: 128, Name: "icon_128x128"},
	{Size: 256, Name: "icon_128x128@2x"},
	{Size: 256, Name: "icon_256x256"},
	{Size: 512, Name: "icon_256x256@2x"},
	{Size: 512, Name: "icon_512x512"},
	{Size: 1024, Name: "icon_512x512@2x"},
}

// Largest returns the entry with the biggest pixel size.
func Largest() Entry {
	best := Entries[0]
	for _, e := range Entries[1:] {
		if e.Size > best.Size {
			best = e
		}
	}
	return best
}

// StagingDir returns the .iconset directory used while packaging output.
func StagingDir(output string) string {
	if ext := filepath.Ext(output); strings.EqualFold(ext, ".icns") {
		return strings.TrimSuffix(output, ext) + ".iconset"
	}
	return output + ".iconset"
}
