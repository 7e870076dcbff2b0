package detector

import (
	"path/filepath"

	"github.com/dbsmedya/codeinventory/internal/logger"
	"github.com/dbsmedya/codeinventory/internal/types"
)

const (
	packageJSON  = "package.json"
	tsconfigJSON = "tsconfig.json"
)

// NodeDetector matches folders with a package.json. A tsconfig.json next to
// it switches the language to TypeScript.
type NodeDetector struct {
	log *logger.Logger
}

func NewNodeDetector(log *logger.Logger) *NodeDetector {
	if log == nil {
		log = logger.NewNop()
	}
	return &NodeDetector{log: log}
}

func (d *NodeDetector) Name() string {
	return "node"
}

func (d *NodeDetector) Detect(folder string) (*types.Detection, error) {
	ok, err := exists(filepath.Join(folder, packageJSON))
	if err != nil || !ok {
		return nil, err
	}

	hasTypeScript, err := exists(filepath.Join(folder, tsconfigJSON))
	if err != nil {
		return nil, err
	}

	keywords := []string{"node", "javascript"}
	language := "JavaScript"
	if hasTypeScript {
		keywords = append(keywords, "typescript")
		language = "TypeScript"
	}

	d.log.Debugw("Node project detected", "folder", folder, "typescript", hasTypeScript)

	return &types.Detection{
		ProjectType:     types.ProjectTypeWebApp,
		PrimaryLanguage: language,
		Keywords:        keywords,
		Source:          "node-markers",
	}, nil
}
