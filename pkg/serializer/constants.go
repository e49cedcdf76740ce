package serializer

// StdoutURI is the special output path that selects stdout.
const StdoutURI = "-"
