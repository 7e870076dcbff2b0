package detector

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/codeinventory/internal/config"
	"github.com/dbsmedya/codeinventory/internal/logger"
	"github.com/dbsmedya/codeinventory/internal/types"
)

type markerRule struct {
	projectType string
	language    string
	keywords    []string
}

// GenericDetector classifies folders through an ordered marker table. Markers
// that start with "." match the extension of any regular file directly in the
// folder; all others match an exact file name.
type GenericDetector struct {
	rules *orderedmap.OrderedMap[string, markerRule]
	log   *logger.Logger
}

// NewGenericDetector builds the built-in table and appends extra markers in
// the given order. Extra markers never replace a built-in entry.
func NewGenericDetector(log *logger.Logger, extra ...config.MarkerConfig) *GenericDetector {
	if log == nil {
		log = logger.NewNop()
	}

	rules := orderedmap.NewOrderedMap[string, markerRule]()
	rules.Set("Cargo.toml", markerRule{types.ProjectTypeLibrary, "Rust", []string{"rust", "cargo"}})
	rules.Set("go.mod", markerRule{types.ProjectTypeLibrary, "Go", []string{"go", "gomod"}})
	rules.Set(".csproj", markerRule{types.ProjectTypeLibrary, "C#", []string{"dotnet", "csharp"}})
	rules.Set("composer.json", markerRule{types.ProjectTypeWebApp, "PHP", []string{"php", "composer"}})

	for _, m := range extra {
		if _, ok := rules.Get(m.Marker); ok {
			log.Warnw("Ignoring extra marker that is already defined", "marker", m.Marker)
			continue
		}
		rules.Set(m.Marker, markerRule{m.ProjectType, m.Language, slices.Clone(m.Keywords)})
	}

	return &GenericDetector{rules: rules, log: log}
}

func (d *GenericDetector) Name() string {
	return "generic"
}

// Markers returns the table keys in evaluation order.
func (d *GenericDetector) Markers() []string {
	markers := make([]string, 0, d.rules.Len())
	for el := d.rules.Front(); el != nil; el = el.Next() {
		markers = append(markers, el.Key)
	}
	return markers
}

func (d *GenericDetector) Detect(folder string) (*types.Detection, error) {
	for el := d.rules.Front(); el != nil; el = el.Next() {
		marker, rule := el.Key, el.Value

		if strings.HasPrefix(marker, ".") {
			if !d.containsSuffix(folder, marker) {
				continue
			}
		} else {
			ok, err := exists(filepath.Join(folder, marker))
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}

		d.log.Debugw("Generic project detected", "folder", folder, "marker", marker)

		return &types.Detection{
			ProjectType:     rule.projectType,
			PrimaryLanguage: rule.language,
			Keywords:        slices.Clone(rule.keywords),
			Source:          "generic-marker:" + marker,
		}, nil
	}

	return nil, nil
}

// containsSuffix reports whether folder directly holds a regular file whose
// extension equals suffix. Listing failures count as no match.
func (d *GenericDetector) containsSuffix(folder, suffix string) bool {
	entries, err := os.ReadDir(folder)
	if err != nil {
		d.log.Debugw("Unable to list folder for suffix marker",
			"folder", folder,
			"suffix", suffix,
			"error", err,
		)
		return false
	}

	for _, entry := range entries {
		if fileSuffix(entry.Name()) != suffix {
			continue
		}
		if isRegularFile(folder, entry) {
			return true
		}
	}

	return false
}

// fileSuffix returns the final extension of name. Names whose only dot is the
// leading one (".csproj") and names ending in a dot have no extension.
func fileSuffix(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

func isRegularFile(folder string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(filepath.Join(folder, entry.Name()))
		return err == nil && info.Mode().IsRegular()
	}
	return entry.Type().IsRegular()
}
