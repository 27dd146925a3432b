package internal

// Version is the mdtranslate release, overridden at build time with
// -ldflags "-X codeberg.org/snonux/mdtranslate/internal.Version=...".
var Version = "0.3.0"
