// Package yamlutil pre-seeds a flag.FlagSet from a YAML manifest, ported
// from coreos/pkg/yamlutil's yaml.v1-based SetFlagsFromYaml onto
// gopkg.in/yaml.v2.
package yamlutil

import (
	"flag"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

// SetFlagsFromYaml visits every flag registered on fs and, for any not
// already set on the command line, looks up REPLACE(UPPERCASE(name),
// '-', '_') in rawYaml and applies it via fs.Set.
func SetFlagsFromYaml(fs *flag.FlagSet, rawYaml []byte) (err error) {
	conf := make(map[string]string)
	if err = yaml.Unmarshal(rawYaml, conf); err != nil {
		return
	}

	alreadySet := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		alreadySet[f.Name] = true
	})

	fs.VisitAll(func(f *flag.Flag) {
		if alreadySet[f.Name] {
			return
		}
		tag := strings.ToUpper(f.Name)
		tag = strings.Replace(tag, "-", "_", -1)
		if tag == "" {
			return
		}
		val, ok := conf[tag]
		if !ok {
			return
		}
		if serr := fs.Set(f.Name, val); serr != nil {
			err = fmt.Errorf("yamlutil: invalid value %q for %s: %w", val, tag, serr)
		}
	})
	return
}
