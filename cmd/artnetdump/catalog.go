package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type catalogEntry struct {
	Name   string `toml:"name"`
	Hex    string `toml:"hex"`
	Expect string `toml:"expect"`
}

type catalogFile struct {
	Frames []catalogEntry `toml:"frame"`
}

func loadCatalog(path string) ([]catalogEntry, error) {
	var raw catalogFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load catalog: unknown key %q", undecoded[0].String())
	}
	if !meta.IsDefined("frame") {
		return nil, fmt.Errorf("load catalog: no [[frame]] entries in %s", path)
	}

	entries := make([]catalogEntry, 0, len(raw.Frames))
	for i, e := range raw.Frames {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			e.Name = fmt.Sprintf("frame[%d]", i)
		}
		if strings.TrimSpace(e.Hex) == "" {
			return nil, fmt.Errorf("load catalog: %s has no hex", e.Name)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
