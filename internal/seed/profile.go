package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a declarative seeding recipe loaded from a YAML file. It
// lets a dev environment pin its dataset instead of passing flags.
type Profile struct {
	Users    int  `yaml:"users"`
	Articles int  `yaml:"articles"`
	Clean    bool `yaml:"clean"`
}

// LoadProfile reads a seeding profile from the given YAML file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed profile: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse seed profile: %w", err)
	}

	if profile.Users < 0 || profile.Articles < 0 {
		return nil, fmt.Errorf("seed profile counts must not be negative")
	}
	return &profile, nil
}

// Options converts the profile into seeder options.
func (p *Profile) Options() Options {
	return Options{
		NumUsers:    p.Users,
		NumArticles: p.Articles,
		ShouldClean: p.Clean,
	}
}
