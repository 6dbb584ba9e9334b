/*
Package config loads registry settings from YAML files and the environment.

A configuration file looks like:

	shards: 64
	concurrency_mode: compute-once
	log_level: debug
	metrics_namespace: myapp_assoc

Environment variables override the file:

	OBJECTASSOC_SHARDS=128
	OBJECTASSOC_CONCURRENCY_MODE=last-write-wins
	OBJECTASSOC_LOG_LEVEL=info
	OBJECTASSOC_METRICS_NAMESPACE=myapp_assoc

and may themselves come from a .env file loaded with LoadDotEnv. Typical use:

	cfg, err := config.Load("objectassoc.yaml")
	if err != nil {
	    return err
	}
	reg := registry.New(cfg.Options(logger, prometheus.DefaultRegisterer)...)
*/
package config
