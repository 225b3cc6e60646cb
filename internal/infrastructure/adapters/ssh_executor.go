package adapters

import (
	"bytes"
	"context"
	goerrors "errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

// SSHConfig holds the parameters of the management connection to a switch
type SSHConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Timeout  time.Duration
}

// SSHCommandExecutor runs commands on a remote switch. The SSH connection is
// dialed lazily and reused; every command gets its own session.
type SSHCommandExecutor struct {
	config SSHConfig
	logger *logrus.Logger

	mu     sync.Mutex
	client *ssh.Client
}

// NewSSHCommandExecutor creates a new SSHCommandExecutor
func NewSSHCommandExecutor(cfg SSHConfig, logger *logrus.Logger) *SSHCommandExecutor {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	return &SSHCommandExecutor{config: cfg, logger: logger}
}

var _ interfaces.CommandExecutor = (*SSHCommandExecutor)(nil)

// Execute runs the command remotely and fails on a non-zero exit status
func (e *SSHCommandExecutor) Execute(ctx context.Context, command string, args ...string) ([]byte, error) {
	stdout, stderr, code, err := e.run(ctx, command, args...)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return nil, errors.NewSystemError(
			fmt.Sprintf("command execution failed on %s: %s", e.config.Host, commandLine(command, args)),
			fmt.Errorf("exit status %d, stderr: %s", code, strings.TrimSpace(stderr)),
		)
	}
	return stdout, nil
}

// ExecuteUnchecked runs the command remotely and reports its exit code
func (e *SSHCommandExecutor) ExecuteUnchecked(ctx context.Context, command string, args ...string) ([]byte, int, error) {
	stdout, _, code, err := e.run(ctx, command, args...)
	if err != nil {
		return nil, -1, err
	}
	return stdout, code, nil
}

// ExecuteWithTimeout runs the command remotely with a deadline; zero means none
func (e *SSHCommandExecutor) ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) ([]byte, error) {
	if timeout <= 0 {
		return e.Execute(ctx, command, args...)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	output, err := e.Execute(ctx, command, args...)
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		return nil, errors.NewTimeoutError(
			fmt.Sprintf("command execution timeout on %s: %s (timeout: %v)", e.config.Host, commandLine(command, args), timeout),
		)
	}
	return output, err
}

// Close closes the SSH connection if it was opened
func (e *SSHCommandExecutor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	return err
}

func (e *SSHCommandExecutor) run(ctx context.Context, command string, args ...string) ([]byte, string, int, error) {
	client, err := e.connect()
	if err != nil {
		return nil, "", -1, err
	}

	session, err := client.NewSession()
	if err != nil {
		return nil, "", -1, errors.NewSystemError(fmt.Sprintf("SSH session to %s", e.config.Host), err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	line := shellJoin(command, args)
	e.logger.WithFields(logrus.Fields{
		"host":    e.config.Host,
		"command": line,
	}).Debug("Executing remote command")

	done := make(chan error, 1)
	go func() { done <- session.Run(line) }()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		return nil, "", -1, errors.NewSystemError(
			fmt.Sprintf("command execution aborted on %s: %s", e.config.Host, line), ctx.Err())
	case err := <-done:
		if err == nil {
			return stdout.Bytes(), stderr.String(), 0, nil
		}
		var exitErr *ssh.ExitError
		if goerrors.As(err, &exitErr) {
			return stdout.Bytes(), stderr.String(), exitErr.ExitStatus(), nil
		}
		return nil, stderr.String(), -1, errors.NewSystemError(
			fmt.Sprintf("command execution failed on %s: %s", e.config.Host, line), err)
	}
}

func (e *SSHCommandExecutor) connect() (*ssh.Client, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client != nil {
		return e.client, nil
	}

	clientConfig := &ssh.ClientConfig{
		User: e.config.User,
		Auth: []ssh.AuthMethod{
			ssh.Password(e.config.Password),
		},
		// Management networks in the lab carry no host key inventory.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         e.config.Timeout,
	}

	addr := net.JoinHostPort(e.config.Host, strconv.Itoa(e.config.Port))
	client, err := ssh.Dial("tcp", addr, clientConfig)
	if err != nil {
		return nil, errors.NewSystemError(fmt.Sprintf("SSH dial %s", addr), err)
	}
	e.client = client
	return client, nil
}

// shellJoin quotes arguments for the remote shell
func shellJoin(command string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, command)
	for _, arg := range args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, func(r rune) bool {
		return !(r == '-' || r == '_' || r == '.' || r == '/' || r == ':' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
