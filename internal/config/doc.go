// Package config loads the hotkeys configuration.
//
// Configuration is read from a TOML file and then overridden by
// environment variables carrying the HOTKEYS_ prefix:
//
//	[logging]
//	level = "info"
//	sink = "file"
//	file = "/var/log/hotkeys.log"
//
//	[engine]
//	default_scope = "all"
//	filter = "default"
//	recover_panics = true
//	metrics = false
//
//	[keymaps]
//	paths = ["~/.config/hotkeys/keymaps"]
//	watch = true
//
//	[plugins]
//	scripts = ["~/.config/hotkeys/init.lua"]
//
// HOTKEYS_LOG_LEVEL and HOTKEYS_SCOPE are shorthands for logging.level and
// engine.default_scope. Any other HOTKEYS_<SECTION>_<KEY> variable sets
// <section>.<key>, e.g. HOTKEYS_ENGINE_METRICS=true.
//
// A missing configuration file is not an error; defaults apply.
package config
