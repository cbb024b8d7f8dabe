// Package cli implements the skadimon command-line interface.
//
// Commands are plain cobra.Command values registered in init. Each one
// resolves its settings through loadSettings (config file, environment,
// then flags) and delegates the real work to the dashboard, api and
// monitor packages.
//
// # Command Structure
//
//	skadimon                  - same as "skadimon monitor"
//	skadimon monitor          - live dashboard (needs a terminal)
//	skadimon snapshot         - one-shot fetch of all three endpoints
//	skadimon config init      - write a commented .skadimon.yaml
//	skadimon config set k v   - change one key, keeping comments
//	skadimon config show      - print the effective configuration
//	skadimon version          - build information
//
// # Flag Handling
//
// Global flags (--config, --url, --no-color, --verbose) live on the root
// command. --url wins over base_url from the config file and SKADIMON_BASE_URL.
//
// # Machine Output
//
// snapshot --json wraps its output in a JSONEnvelope. Errors in that mode
// are written as an envelope too, with codes from mapErrorCode.
package cli
