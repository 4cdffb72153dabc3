package algotrace

// Version is the release version. Release builds override it with
// -ldflags "-X github.com/aretw0/algotrace.Version=...".
var Version = "0.1.0-dev"
