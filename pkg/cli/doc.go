// Package cli implements the hostmetrics command-line interface.
//
// # Commands
//
// snapshot - Capture every measurement of the host:
//
//	hostmetrics snapshot [--physical-only] [--format yaml|json|table] [--output FILE] [--textfile FILE]
//
// With --textfile the snapshot is written in the Prometheus text format for
// the node_exporter textfile collector.
//
// get - Read a single metric:
//
//	hostmetrics get <cpu|cpu-times|cpu-stats|load|memory|swap|partitions|disk-io|net-io|host|users|virt>
//
// watch - Read a metric repeatedly:
//
//	hostmetrics watch [--interval 5s] [--count N] <metric>
//
// Samples are paced by a token bucket; the library itself never polls.
//
// render - Re-render a saved snapshot in another format:
//
//	hostmetrics render --format table snapshot.yaml
//
// # Global Flags
//
//	--config FILE     YAML config file (default $HOME/.hostmetrics.yaml)
//	--env-file FILE   dotenv file loaded before the environment is read
//	--log-level LVL   debug, info, warn, error
//
// # Environment Variables
//
//	HOSTMETRICS_PROC_ROOT  relocated /proc, e.g. /host/proc in a container
//	HOSTMETRICS_SYS_ROOT   relocated /sys
//	HOSTMETRICS_ETC_ROOT   relocated /etc
//	HOSTMETRICS_RUN_ROOT   relocated /run
//	HOSTMETRICS_VAR_ROOT   relocated /var
//	HOSTMETRICS_HOST_ROOT  relocated /
//	LOG_LEVEL              logging verbosity when --log-level is not given
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//	2  Interrupted or timed out
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/hostmetrics/pkg/cli.version=1.0.0'"
package cli
