// Package config loads the service configuration.
//
// # Configuration Sources
//
// Values are resolved in the following order of precedence:
//
//	1. Environment variables (highest priority)
//	2. config.yaml or configs/config.yaml
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// Variables use the REALESTATE_ prefix followed by section and field:
//
//	REALESTATE_SERVER_PORT=8000
//	REALESTATE_DATA_SAMPLE_PATH=data/sample_realestate.xlsx
//	REALESTATE_DATA_TABLE_ROW_LIMIT=200
//	REALESTATE_LLM_MODEL=grok-2-1212
//	REALESTATE_TELEMETRY_TRACING_ENABLED=true
//
// The language model credential is also read from the unprefixed
// GROK_API_KEY variable. When no credential is set, summaries are returned
// exactly as generated and no outbound call is made.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
