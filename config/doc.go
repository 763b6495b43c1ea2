// Package config loads armlift settings.
//
// Load merges, in increasing priority, the built-in defaults, a YAML file
// (JSON is accepted as a fallback) and ARMLIFT_* environment variables, then
// validates the result. Durations are written as Go duration strings ("30s")
// in both formats.
//
// Environment overrides:
//
//	ARMLIFT_INSTANCES         race.instances
//	ARMLIFT_SEED              race.seed
//	ARMLIFT_POLL_INTERVAL     race.poll_interval
//	ARMLIFT_HEURISTIC         race.heuristic (arm_bias | uniform)
//	ARMLIFT_RESUME            race.resume
//	ARMLIFT_PRECISION2        search.precision2
//	ARMLIFT_PRECISION3        search.precision3
//	ARMLIFT_TUNNELING_PROB    search.tunneling_prob
//	ARMLIFT_MIN_BRANCH_PROB   search.min_branch_prob
//	ARMLIFT_MAX_BRANCH_PROB   search.max_branch_prob
//	ARMLIFT_ANNEAL_PERIOD     search.anneal_period
//	ARMLIFT_EXCEPTION_PERIOD  search.exception_period
//	ARMLIFT_CHECKPOINT_PATH   checkpoint.path (enables checkpoints)
//	ARMLIFT_CHECKPOINT_MEMORY checkpoint.in_memory
//	ARMLIFT_LOG_LEVEL         log.level
//	ARMLIFT_LOG_FORMAT        log.format (text | json)
//	ARMLIFT_METRICS_ADDR      metrics.addr
//
// Unparsable environment values are ignored.
package config
