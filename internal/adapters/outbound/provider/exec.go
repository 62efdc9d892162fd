package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/locaudit/locaudit/internal/domain"
)

// maxOutput is how much combined output is kept, from the end.
const maxOutput = 64 << 10

// ExecProvider implements domain.TranslationProvider by running a shell-style
// command line in the project directory.
type ExecProvider struct{}

// New creates an ExecProvider.
func New() *ExecProvider { return &ExecProvider{} }

// Run executes req.Command. A non-zero exit is reported in the result; an
// error means the command could not be parsed, started or finished in time.
func (p *ExecProvider) Run(ctx context.Context, req domain.ProviderRequest) (*domain.ProviderResult, error) {
	argv, err := shellquote.Split(req.Command)
	if err != nil {
		return nil, fmt.Errorf("parsing provider command: %w", err)
	}
	if len(argv) == 0 {
		return nil, errors.New("provider command is empty")
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = req.ProjectPath
	cmd.Env = os.Environ()
	if req.APIKeyEnv != "" && req.APIKey != "" {
		cmd.Env = append(cmd.Env, req.APIKeyEnv+"="+req.APIKey)
	}
	out := &tailBuffer{max: maxOutput}
	cmd.Stdout = out
	cmd.Stderr = out

	start := time.Now()
	runErr := cmd.Run()
	res := &domain.ProviderResult{Duration: time.Since(start), Output: out.String()}

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("provider timed out after %s", req.Timeout)
	}
	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
		res.Success = true
	case errors.As(runErr, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		return nil, fmt.Errorf("starting provider: %w", runErr)
	}
	return res, nil
}

type tailBuffer struct {
	buf bytes.Buffer
	max int
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	b.buf.Write(p)
	if over := b.buf.Len() - b.max; over > 0 {
		b.buf.Next(over)
	}
	return n, nil
}

func (b *tailBuffer) String() string { return b.buf.String() }
