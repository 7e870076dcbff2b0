package detector

import (
	"path/filepath"

	"github.com/dbsmedya/codeinventory/internal/logger"
	"github.com/dbsmedya/codeinventory/internal/types"
)

// pythonMarkers in check order, each with the keyword it contributes.
var pythonMarkers = []struct {
	file    string
	keyword string
}{
	{"pyproject.toml", "pyproject"},
	{"setup.py", "setuptools"},
	{"requirements.txt", "requirements"},
}

// PythonDetector matches folders holding Python packaging markers. A "src"
// subfolder marks a packaged CLI tool; without it the folder is a script.
type PythonDetector struct {
	log *logger.Logger
}

func NewPythonDetector(log *logger.Logger) *PythonDetector {
	if log == nil {
		log = logger.NewNop()
	}
	return &PythonDetector{log: log}
}

func (d *PythonDetector) Name() string {
	return "python"
}

func (d *PythonDetector) Detect(folder string) (*types.Detection, error) {
	var found []string
	keywords := []string{"python"}

	for _, m := range pythonMarkers {
		ok, err := exists(filepath.Join(folder, m.file))
		if err != nil {
			return nil, err
		}
		if ok {
			found = append(found, m.file)
			keywords = append(keywords, m.keyword)
		}
	}

	if len(found) == 0 {
		return nil, nil
	}

	projectType := types.ProjectTypeScript
	if isDir(filepath.Join(folder, "src")) {
		projectType = types.ProjectTypeCLITool
		keywords = append(keywords, "src-layout")
	}

	d.log.Debugw("Python project detected", "folder", folder, "markers", found)

	return &types.Detection{
		ProjectType:     projectType,
		PrimaryLanguage: "Python",
		Keywords:        keywords,
		Source:          "python-markers",
	}, nil
}
