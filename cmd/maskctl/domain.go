package main

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/MrEthical07/bitmask/flags"
	"github.com/apex/log"
)

// domainFile is the on-disk form of a flag domain:
//
//	name = "permissions"
//
//	[flags]
//	read = 0
//	write = 1
type domainFile struct {
	Name  string         `toml:"name"`
	Flags map[string]int `toml:"flags"`
}

func loadDomain(path string) (*flags.Domain[flags.Named], error) {
	var file domainFile
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("read domain %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.WithField("key", key.String()).Warnf("ignoring unknown key in %s", path)
	}

	members := make([]flags.Named, 0, len(file.Flags))
	for name, code := range file.Flags {
		members = append(members, flags.Named{Name: name, Value: code})
	}
	slices.SortFunc(members, func(a, b flags.Named) int {
		return cmp.Or(cmp.Compare(a.Value, b.Value), cmp.Compare(a.Name, b.Name))
	})

	domain, err := flags.NewDomain(file.Name, members...)
	if err != nil {
		return nil, fmt.Errorf("domain %s: %w", path, err)
	}

	log.WithFields(log.Fields{
		"domain":  domain.Name(),
		"members": len(members),
		"bits":    domain.Length(),
	}).Debug("loaded domain")
	return domain, nil
}
