// Package config loads runtime configuration for the chat client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the chat API
//	-i int      feed poll interval (seconds)
//	-f string   path of the local session database
//	-l string   log file path
//	-v string   log level
//
// # JSON schema
//
// Intervals are timex.Duration, so they can be strings like "3s" or integer
// nanoseconds. Keys left out keep their current value:
//
//	{
//	  "server_url": "http://chat.corp.example:8000",
//	  "poll_interval": "3s",
//	  "database_path": "corpchat.db",
//	  "log_file": "corpchat.log",
//	  "log_level": "debug"
//	}
package config
