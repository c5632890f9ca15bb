package utils

// REVISION is stamped into every response envelope so mobile clients
// can detect a stale backend.
const REVISION = "1.4.2"
