package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v2"

	"github.com/preston-bernstein/tournament-sim/internal/providers"
)

const providerName = "file"

// Provider reads rosters and exhibition history from JSON or YAML files.
// The format is picked from the file extension (.yaml/.yml, anything else is JSON).
// Files are read on first use and cached.
type Provider struct {
	groupsPath      string
	exhibitionsPath string

	mu          sync.Mutex
	groups      map[string][]providers.TeamRecord
	exhibitions map[string][]providers.ExhibitionRecord
}

// New creates a file-backed provider. An empty exhibitionsPath means no history.
func New(groupsPath, exhibitionsPath string) *Provider {
	return &Provider{groupsPath: groupsPath, exhibitionsPath: exhibitionsPath}
}

// GroupNames returns group names in lexical order.
func (p *Provider) GroupNames(ctx context.Context) ([]string, error) {
	groups, err := p.loadGroups(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Roster returns the group's roster in file order.
func (p *Provider) Roster(ctx context.Context, group string) ([]providers.TeamRecord, error) {
	groups, err := p.loadGroups(ctx)
	if err != nil {
		return nil, err
	}
	roster, ok := groups[group]
	if !ok {
		return nil, fmt.Errorf("%w: %q", providers.ErrGroupNotFound, group)
	}
	return append([]providers.TeamRecord(nil), roster...), nil
}

// Exhibitions returns the team's history. A missing exhibitions file yields no history.
func (p *Provider) Exhibitions(ctx context.Context, isoCode string) ([]providers.ExhibitionRecord, error) {
	exhibitions, err := p.loadExhibitions(ctx)
	if err != nil {
		return nil, err
	}
	return append([]providers.ExhibitionRecord(nil), exhibitions[isoCode]...), nil
}

func (p *Provider) loadGroups(ctx context.Context) (map[string][]providers.TeamRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.groups != nil {
		return p.groups, nil
	}

	groups := map[string][]providers.TeamRecord{}
	if err := decodeFile(p.groupsPath, &groups); err != nil {
		return nil, &providers.SourceError{Provider: providerName, Source: p.groupsPath, Err: err}
	}
	p.groups = groups
	return groups, nil
}

func (p *Provider) loadExhibitions(ctx context.Context) (map[string][]providers.ExhibitionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.exhibitions != nil {
		return p.exhibitions, nil
	}

	exhibitions := map[string][]providers.ExhibitionRecord{}
	if p.exhibitionsPath != "" {
		err := decodeFile(p.exhibitionsPath, &exhibitions)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, &providers.SourceError{Provider: providerName, Source: p.exhibitionsPath, Err: err}
		}
	}
	p.exhibitions = exhibitions
	return exhibitions, nil
}

func decodeFile(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, dest)
	default:
		return json.Unmarshal(data, dest)
	}
}
