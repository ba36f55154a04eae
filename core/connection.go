package core

import (
	"fmt"
	"io"
	"maps"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

const defaultTmpdir = "/tmp"

// ExecuteOptions adjust how a remote command runs.
type ExecuteOptions struct {
	// Interpreter is prepended to the command, e.g. ["/bin/sh", "-c"].
	Interpreter []string
	// Environment is exported into the remote process. Entries are
	// passed in sorted key order so invocations stay reproducible.
	Environment map[string]string
	// Stdin, when set, streams to the remote process. When nil the
	// remote side runs with stdin disabled.
	Stdin io.Reader
}

// Connection drives one container through the lxc client. It is not
// safe for concurrent use; callers run operations sequentially. A
// connection binds to a single container for its whole lifetime.
type Connection struct {
	target *Target
	logger Logger
	run    invoker

	remote    string
	tmpdir    string
	container *ContainerInfo
}

// NewConnection validates the target and prepares a connection. It
// fails when the target has no host or its options do not decode.
func NewConnection(target *Target, logger Logger) (*Connection, error) {
	if logger == nil {
		logger = &SimpleLogger{}
	}
	if err := target.check(); err != nil {
		return nil, err
	}
	opts, err := target.transportOptions()
	if err != nil {
		return nil, err
	}

	c := &Connection{
		target: target,
		logger: logger,
		run:    &cliInvoker{logger: logger},
		remote: opts.Remote,
		tmpdir: opts.Tmpdir,
	}
	c.logger.Debugf("Initialized connection for %s (remote %q)", target.DisplayName(), c.remote)
	return c, nil
}

// Remote returns the resolved remote name.
func (c *Connection) Remote() string { return c.remote }

// Container returns the instance record cached by Connect, or nil
// before a successful connect.
func (c *Connection) Container() *ContainerInfo { return c.container }

// containerTarget is the remote-qualified instance name used on the
// lxc command line.
func (c *Connection) containerTarget() string {
	return c.remote + ":" + c.container.Name
}

// Connect verifies the configured remote exists and caches the record
// of the container named by the target's host. Every failure comes
// back as a connect error naming the target.
func (c *Connection) Connect() error {
	if c.container != nil {
		return nil
	}

	remotes := map[string]RemoteInfo{}
	if err := runJSON(c.run, []string{"remote", "list"}, &remotes); err != nil {
		return newConnectError(c.target.DisplayName(), err)
	}
	if _, ok := remotes[c.remote]; !ok {
		return newConnectError(c.target.DisplayName(), fmt.Errorf("%w: %q", ErrRemoteNotFound, c.remote))
	}

	var instances []ContainerInfo
	if err := runJSON(c.run, []string{"list"}, &instances); err != nil {
		return newConnectError(c.target.DisplayName(), err)
	}
	for i := range instances {
		if instances[i].Name == c.target.Host {
			c.container = &instances[i]
			c.logger.Debugf("Opened session for %s as %s", c.target.DisplayName(), c.containerTarget())
			return nil
		}
	}
	return newConnectError(c.target.DisplayName(), fmt.Errorf("%w: %q", ErrContainerNotFound, c.target.Host))
}

// Execute runs command inside the container. A non-zero exit comes
// back as a normal result; the returned error is reserved for spawn
// failures and connections that were never established.
func (c *Connection) Execute(command []string, opts ExecuteOptions) (*Result, error) {
	if c.container == nil {
		return nil, ErrNotConnected
	}

	extra := make([]string, 0, 2*len(opts.Environment)+len(opts.Interpreter)+len(command)+3)
	if opts.Stdin == nil {
		extra = append(extra, "--disable-stdin")
	}
	for _, k := range slices.Sorted(maps.Keys(opts.Environment)) {
		extra = append(extra, "--env", k+"="+opts.Environment[k])
	}
	extra = append(extra, c.containerTarget(), "--")
	extra = append(extra, opts.Interpreter...)
	extra = append(extra, command...)

	raw, err := c.run.Run([]string{"exec"}, extra, opts.Stdin)
	if err != nil {
		c.logger.Debugf("Command aborted on %s: %v", c.target.DisplayName(), err)
		return nil, err
	}

	res := newResult(raw)
	if res.Success() {
		c.logger.Debugf("Command finished on %s", c.target.DisplayName())
	} else {
		c.logger.Noticef("Command on %s exited %d", c.target.DisplayName(), res.ExitStatus)
	}
	return res, nil
}

// WriteRemoteFile uploads a local file to destination inside the
// container.
func (c *Connection) WriteRemoteFile(source, destination string) error {
	return c.filePush(source, destination, false)
}

// WriteRemoteDirectory uploads a local directory tree to destination
// inside the container.
func (c *Connection) WriteRemoteDirectory(source, destination string) error {
	return c.filePush(source, destination, true)
}

func (c *Connection) filePush(source, destination string, recursive bool) error {
	if c.container == nil {
		return newFileError(WriteError, fmt.Sprintf("writing %s: %v", source, ErrNotConnected))
	}

	dest := c.containerTarget() + destination
	extra := []string{source, dest}
	if recursive {
		extra = append(extra, "--recursive")
	}
	raw, err := c.run.Run([]string{"file", "push"}, extra, nil)
	if err != nil {
		return newFileError(WriteError, fmt.Sprintf("writing %s to %s: %v", source, dest, err))
	}
	if raw.ExitStatus != 0 {
		return newFileError(WriteError, fmt.Sprintf("writing %s to %s: %s", source, dest, newResult(raw).Output()))
	}
	return nil
}

// Mkdirs creates every directory of dirs inside the container,
// including missing parents.
func (c *Connection) Mkdirs(dirs []string) error {
	res, err := c.Execute(append([]string{"mkdir", "-p"}, dirs...), ExecuteOptions{})
	if err != nil {
		return newFileError(MkdirError, fmt.Sprintf("creating directories %s: %v", strings.Join(dirs, " "), err))
	}
	if !res.Success() {
		return newFileError(MkdirError, fmt.Sprintf("creating directories %s: %s", strings.Join(dirs, " "), strings.TrimSpace(res.Stderr)))
	}
	return nil
}

// MakeTempdir creates a private scratch directory inside the container
// and returns its path. The base comes from the target's tmpdir
// option, defaulting to /tmp.
func (c *Connection) MakeTempdir() (string, error) {
	base := c.tmpdir
	if base == "" {
		base = defaultTmpdir
	}
	dir := path.Join(base, uuid.New().String())
	res, err := c.Execute([]string{"mkdir", "-m", "700", dir}, ExecuteOptions{})
	if err != nil {
		return "", newFileError(TempdirError, fmt.Sprintf("creating tempdir %s: %v", dir, err))
	}
	if !res.Success() {
		return "", newFileError(TempdirError, fmt.Sprintf("creating tempdir %s: %s", dir, strings.TrimSpace(res.Stderr)))
	}
	return dir, nil
}

// WithRemoteTempdir runs body with a fresh tempdir and removes the
// directory afterwards. Cleanup problems are logged as warnings and
// never override body's outcome.
func (c *Connection) WithRemoteTempdir(body func(dir string) error) error {
	dir, err := c.MakeTempdir()
	if err != nil {
		return err
	}
	defer func() {
		res, rmErr := c.Execute([]string{"rm", "-rf", dir}, ExecuteOptions{})
		switch {
		case rmErr != nil:
			c.logger.Warningf("Failed to clean up tmpdir %s on %s: %v", dir, c.target.DisplayName(), rmErr)
		case !res.Success():
			c.logger.Warningf("Failed to clean up tmpdir %s on %s: %s", dir, c.target.DisplayName(), strings.TrimSpace(res.Stderr))
		}
	}()
	return body(dir)
}

// WriteRemoteExecutable uploads source into dir, marks it executable
// and returns the remote path. filename overrides the basename of
// source when set.
func (c *Connection) WriteRemoteExecutable(dir, source, filename string) (string, error) {
	if filename == "" {
		filename = filepath.Base(source)
	}
	remotePath := path.Join(dir, filename)
	if err := c.WriteRemoteFile(source, remotePath); err != nil {
		return "", err
	}
	if err := c.MakeExecutable(remotePath); err != nil {
		return "", err
	}
	return remotePath, nil
}

// MakeExecutable gives the remote file's owner execute permission.
func (c *Connection) MakeExecutable(remotePath string) error {
	res, err := c.Execute([]string{"chmod", "u+x", remotePath}, ExecuteOptions{})
	if err != nil {
		return newFileError(ChmodError, fmt.Sprintf("making %s executable: %v", remotePath, err))
	}
	if !res.Success() {
		return newFileError(ChmodError, fmt.Sprintf("making %s executable: %s", remotePath, strings.TrimSpace(res.Stderr)))
	}
	return nil
}
