// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package settings loads the optional user configuration file for mbl.
//
// The file is YAML:
//
//	log_level: debug
//	exclude_commands:
//	  - app/commands/restart
//	update_check:
//	  enabled: false
//	  interval: 12h
//	  url: https://example.com/releases/latest.json
//	prettify:
//	  field: stream
//	  on_parse_error: fail
//	  separator: ""
package settings
