package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/moorcli/moor/core"
	"github.com/moorcli/moor/store"
)

// HistoryCommand lists recent executions from the history database.
type HistoryCommand struct {
	ConfigFile string `long:"config" env:"MOOR_CONFIG" description:"inventory file" default:"./moor.ini"`
	Target     string `long:"target" short:"t" description:"only show runs against this target"`
	Limit      int    `long:"limit" short:"n" default:"20" description:"maximum rows to show"`
	LogLevel   string `long:"log-level" env:"MOOR_LOG_LEVEL" description:"Set log level (overrides config)"`
	Logger     core.Logger
}

// Execute prints the most recent runs, newest first.
func (c *HistoryCommand) Execute(_ []string) error {
	ApplyLogLevel(c.LogLevel)
	conf, err := BuildFromFile(c.ConfigFile, c.Logger)
	if err != nil {
		return err
	}
	if c.LogLevel == "" {
		ApplyLogLevel(conf.Global.LogLevel)
	}
	if conf.Global.HistoryFile == "" {
		return ErrNoHistoryFile
	}

	st, err := store.Open(conf.Global.HistoryFile)
	if err != nil {
		return err
	}
	defer st.Close()

	var rows []store.Execution
	if c.Target != "" {
		rows, err = st.RecentForTarget(c.Target, c.Limit)
	} else {
		rows, err = st.Recent(c.Limit)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tTARGET\tCONTAINER\tEXIT\tTOOK\tCOMMAND")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s:%s\t%d\t%dms\t%s\n",
			row.CreatedAt.Format("2006-01-02 15:04:05"), row.Target,
			row.Remote, row.Host, row.ExitStatus, row.DurationMs, row.Command)
	}
	return w.Flush()
}

// recordExecution appends a run to the history database when one is
// configured. Failures only warn; they never fail the run itself.
func recordExecution(conf *Config, logger core.Logger, conn *core.Connection, target, command string, exitStatus int, started time.Time) {
	if conf.Global.HistoryFile == "" {
		return
	}

	st, err := store.Open(conf.Global.HistoryFile)
	if err != nil {
		logger.Warningf("history: %v", err)
		return
	}
	defer st.Close()

	host := ""
	if info := conn.Container(); info != nil {
		host = info.Name
	}
	e := &store.Execution{
		Target:     target,
		Host:       host,
		Remote:     conn.Remote(),
		Command:    command,
		ExitStatus: exitStatus,
		DurationMs: time.Since(started).Milliseconds(),
	}
	if err := st.Record(e); err != nil {
		logger.Warningf("history: %v", err)
	}
}
