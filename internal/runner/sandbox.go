package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
)

const (
	pythonImage = "python:3.12-alpine"

	// Resource limits for a single run.
	memoryLimitBytes = 128 * 1024 * 1024 // 128MB
	cpuQuota         = 50000             // 0.5 CPU
	pidsLimit        = 64
)

// DockerSandbox runs Python code in a short-lived container: no network,
// capped memory/CPU/pids, always removed afterwards.
type DockerSandbox struct {
	cli *client.Client
}

// NewDockerSandbox connects to the local Docker daemon. Returns an error when
// no daemon is reachable; callers then fall back to simulated execution.
func NewDockerSandbox(ctx context.Context) (*DockerSandbox, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}
	if _, err := cli.Ping(ctx); err != nil {
		closeQuietly(cli)
		return nil, fmt.Errorf("ping docker daemon: %w", err)
	}
	return &DockerSandbox{cli: cli}, nil
}

// Run executes the code with python3 -c inside a fresh container and returns
// combined stdout/stderr.
func (s *DockerSandbox) Run(ctx context.Context, code string) (string, error) {
	config := &container.Config{
		Image:           pythonImage,
		Cmd:             []string{"python3", "-c", code},
		NetworkDisabled: true,
	}
	hostConfig := &container.HostConfig{
		NetworkMode: "none",
		AutoRemove:  false,
		Resources: container.Resources{
			Memory:    memoryLimitBytes,
			CPUQuota:  cpuQuota,
			PidsLimit: ptr(int64(pidsLimit)),
		},
	}

	resp, err := s.cli.ContainerCreate(ctx, config, hostConfig, nil, nil, "")
	if errdefs.IsNotFound(err) {
		if pullErr := s.pullImage(ctx); pullErr != nil {
			return "", pullErr
		}
		resp, err = s.cli.ContainerCreate(ctx, config, hostConfig, nil, nil, "")
	}
	if err != nil {
		return "", fmt.Errorf("create run container: %w", err)
	}
	defer s.remove(resp.ID)

	if err := s.cli.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return "", fmt.Errorf("start run container %s: %w", resp.ID, err)
	}

	waitCh, errCh := s.cli.ContainerWait(ctx, resp.ID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		if err != nil {
			return "", fmt.Errorf("wait for run container %s: %w", resp.ID, err)
		}
	case <-waitCh:
	case <-ctx.Done():
		return "", fmt.Errorf("run container %s: %w", resp.ID, ctx.Err())
	}

	logs, err := s.cli.ContainerLogs(ctx, resp.ID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
	})
	if err != nil {
		return "", fmt.Errorf("read run container logs %s: %w", resp.ID, err)
	}
	defer logs.Close()

	var buf bytes.Buffer
	if _, err := stdcopy.StdCopy(&buf, &buf, logs); err != nil {
		return "", fmt.Errorf("demux run container logs %s: %w", resp.ID, err)
	}
	output := buf.String()
	if output == "" {
		output = "No output"
	}
	return output, nil
}

// Close releases the Docker client.
func (s *DockerSandbox) Close() error {
	return s.cli.Close()
}

func (s *DockerSandbox) pullImage(ctx context.Context) error {
	slog.Info("Pulling sandbox image", "image", pythonImage)
	reader, err := s.cli.ImagePull(ctx, pythonImage, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("pull %s: %w", pythonImage, err)
	}
	defer reader.Close()
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return fmt.Errorf("drain pull of %s: %w", pythonImage, err)
	}
	return nil
}

// remove force-removes the container outside the run's context so cleanup
// still happens after a timeout.
func (s *DockerSandbox) remove(containerID string) {
	if err := s.cli.ContainerRemove(context.Background(), containerID, container.RemoveOptions{Force: true}); err != nil {
		slog.Warn("Failed to remove run container", "container_id", containerID, "error", err)
	}
}

func closeQuietly(cli *client.Client) {
	if err := cli.Close(); err != nil {
		slog.Debug("close docker client", "error", err)
	}
}

func ptr[T any](v T) *T {
	return &v
}
