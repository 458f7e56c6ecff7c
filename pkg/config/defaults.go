package config

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		PhotoSort: PhotoSort{
			Extensions: []string{".jpg", ".jpeg", ".raf"},
		},
		Organize: Organize{
			Categories: map[string][]string{
				"Images": {
					".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".tif",
					".webp", ".svg", ".ico", ".heic", ".heif", ".raw", ".cr2",
					".nef", ".orf", ".sr2", ".dng",
				},
				"Documents": {
					".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt", ".pages",
					".tex", ".md", ".html", ".htm", ".xml", ".epub", ".mobi",
				},
				"Spreadsheets": {
					".xls", ".xlsx", ".csv", ".ods", ".numbers", ".tsv",
				},
				"Presentations": {
					".ppt", ".pptx", ".odp", ".key",
				},
				"Videos": {
					".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm",
					".m4v", ".3gp", ".ogv", ".mpg", ".mpeg", ".m2v",
				},
				"Audio": {
					".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a",
					".opus", ".mid", ".midi",
				},
				"Archives": {
					".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz",
					".dmg", ".iso", ".img", ".deb", ".rpm", ".pkg", ".torrent",
				},
				"Code": {
					".py", ".js", ".css", ".json", ".yaml", ".yml", ".sh",
					".bat", ".php", ".rb", ".go", ".c", ".cpp", ".h", ".hpp",
					".java", ".kt", ".swift", ".sql", ".cfg", ".conf", ".ini",
					".toml", ".env", ".ics",
				},
				"Fonts": {
					".ttf", ".otf", ".woff", ".woff2", ".eot",
				},
			},
			SkipNames: []string{
				".ds_store", ".localized", "desktop.ini", "thumbs.db",
				".directory", "$recycle.bin", "system volume information",
			},
		},
	}
}
