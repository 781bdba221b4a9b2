package version

// Version contains the vethctl version number.
var Version = "0.3.0"
