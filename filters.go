package projectr

import (
	"fmt"
	"regexp"
)

// DefaultMaxFileSize is the per-file size cap used when no WithMaxFileSize
// option is set.
const DefaultMaxFileSize int64 = 1 << 20

// defaultIncludePatterns match file basenames. They cover the source and
// documentation files of the project trees this tool targets; plain .txt
// files are deliberately not included.
func defaultIncludePatterns() []string {
	return []string{
		`\.R$`,
		`\.Rmd$`,
		`\.qmd$`,
		`\.Rproj$`,
		`\.md$`,
		`\.ya?ml$`,
		`\.json$`,
		`\.toml$`,
		`^DESCRIPTION$`,
		`^NAMESPACE$`,
		`\.csv$`,
		`\.bib$`,
	}
}

// defaultExcludePatterns match slash-separated relative paths. They drop
// version control state, package caches, rendered docs, and test snapshots.
func defaultExcludePatterns() []string {
	return []string{
		`^\.git/`,
		`^\.Rproj\.user/`,
		`^renv/`,
		`^packrat/`,
		`^node_modules/`,
		`^docs/`,
		`(^|/)_snaps/`,
		`\.Rhistory$`,
		`\.RData$`,
	}
}

// ruleSet holds the compiled filter rules for one collection pass.
type ruleSet struct {
	includes    []*regexp.Regexp
	excludes    []*regexp.Regexp
	maxFileSize int64
}

func compileRules(cfg collectConfig) (ruleSet, error) {
	rs := ruleSet{maxFileSize: cfg.maxFileSize}
	if rs.maxFileSize <= 0 {
		rs.maxFileSize = DefaultMaxFileSize
	}
	var err error
	rs.includes, err = compilePatterns(cfg.includes)
	if err != nil {
		return ruleSet{}, fmt.Errorf("%w: include pattern: %v", ErrValidation, err)
	}
	rs.excludes, err = compilePatterns(cfg.excludes)
	if err != nil {
		return ruleSet{}, fmt.Errorf("%w: exclude pattern: %v", ErrValidation, err)
	}
	return rs, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

// admit reports whether a file with the given basename, relative path, and
// size passes the rules. Includes run against the basename, excludes against
// the full relative path.
func (rs ruleSet) admit(base, relPath string, size int64) bool {
	if size > rs.maxFileSize {
		return false
	}
	if len(rs.includes) > 0 {
		matched := false
		for _, re := range rs.includes {
			if re.MatchString(base) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, re := range rs.excludes {
		if re.MatchString(relPath) {
			return false
		}
	}
	return true
}
