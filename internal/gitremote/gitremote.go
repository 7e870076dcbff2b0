// Package gitremote reads the primary remote URL of a repository from its
// local .git/config. It never contacts the network.
package gitremote

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"

	"github.com/dbsmedya/codeinventory/internal/logger"
)

const (
	githubSSHPrefix   = "git@github.com:"
	githubHTTPSPrefix = "https://github.com/"
	gitSuffix         = ".git"
	remoteSection     = "remote "
)

// Extract returns the normalized URL of the first remote section in
// repoRoot's .git/config that has a non-empty url. It returns "" when .git
// is a file (worktrees, submodules), when the config is missing or cannot be
// parsed, and when no remote has a url. Like git itself, the parser accepts
// repeated keys (several fetch lines) and quoted values; for a repeated url
// key the last value wins.
func Extract(repoRoot string, log *logger.Logger) string {
	if log == nil {
		log = logger.NewNop()
	}
	log = log.WithRepo(repoRoot)

	gitPath := filepath.Join(repoRoot, ".git")
	info, err := os.Stat(gitPath)
	if err != nil {
		log.Debugw("No .git entry found", "error", err)
		return ""
	}
	if !info.IsDir() {
		log.Debug("Skipping git remote extraction for git-file repo layout")
		return ""
	}

	configPath := filepath.Join(gitPath, "config")
	if _, err := os.Stat(configPath); err != nil {
		log.Debug("No git config found for repository")
		return ""
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
		InsensitiveKeys:     true,
	}, configPath)
	if err != nil {
		log.Debugw("Failed to parse git config", "error", err)
		return ""
	}

	for _, section := range cfg.Sections() {
		if !strings.HasPrefix(section.Name(), remoteSection) {
			continue
		}
		if !section.HasKey("url") {
			continue
		}

		raw := strings.TrimSpace(section.Key("url").String())
		if raw == "" {
			continue
		}

		url := NormalizeURL(raw)
		log.Debugw("Extracted remote URL", "section", section.Name(), "raw", raw, "normalized", url)
		return url
	}

	log.Debug("No remote URL found in git config")
	return ""
}

// NormalizeURL rewrites GitHub SSH and HTTPS remotes to the browsable
// https://github.com/<owner>/<repo> form. Other URLs are only trimmed.
func NormalizeURL(url string) string {
	url = strings.TrimSpace(url)

	if repo, ok := strings.CutPrefix(url, githubSSHPrefix); ok {
		return githubHTTPSPrefix + strings.TrimSuffix(repo, gitSuffix)
	}

	if strings.HasPrefix(url, githubHTTPSPrefix) {
		return strings.TrimSuffix(url, gitSuffix)
	}

	return url
}
