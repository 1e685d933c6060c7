package config

// Build information, set at link time:
//
//	go build -ldflags "-X github.com/deppfellow/campus-portal/internal/config.Version=v1.2.0 \
//	  -X github.com/deppfellow/campus-portal/internal/config.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "dev"
	GitCommit = "unknown"
)
