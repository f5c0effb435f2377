// Package config loads the seodesk configuration file.
//
// The config lives at ~/.config/seodesk/config.toml and every field has a
// working default, so a missing file is not an error:
//
//	api_base = "https://api.seo-ai.example"
//	token = "..."
//	language = "ru"              # ru, kk or en
//	process_poll_seconds = 5
//	archive_poll_seconds = 10
//	state_dir = "~/.local/state/seodesk"
//
// language selects which envelope message variant the UI surfaces when the
// API rejects a request. state_dir holds the processed-card id set and the
// debug log.
package config
