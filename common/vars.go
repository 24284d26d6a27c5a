package common

// Version is set at build time with -ldflags "-X github.com/ruteri/failsafe/common.Version=...".
var Version = "dev"
