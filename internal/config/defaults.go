package config

// Directories pruned from the walk wherever they appear.
var defaultSkipDirs = []string{
	".git",
	"node_modules",
	"__pycache__",
	".venv",
	"venv",
	"build",
	"dist",
	".pytest_cache",
	"test_scripts",
	"test_data",
	"fixtures",
	"mock_data",
}

// Substrings of "/"+relative path that exclude a file.
var defaultSkipPaths = []string{
	"/tests/utils/bin/",
	"/test_cases/",
	"/fixtures/",
	"/mock_data/",
	"/test_data/",
	"/examples/",
	".example.",
	".sample.",
}

var defaultExtensions = []string{
	".py", ".yaml", ".yml", ".json", ".xml", ".properties",
	".conf", ".config", ".sh", ".bash", ".env", ".txt",
	".js", ".ts", ".java", ".sql", ".sas",
}

func DefaultSkipDirs() []string   { return append([]string(nil), defaultSkipDirs...) }
func DefaultSkipPaths() []string  { return append([]string(nil), defaultSkipPaths...) }
func DefaultExtensions() []string { return append([]string(nil), defaultExtensions...) }
