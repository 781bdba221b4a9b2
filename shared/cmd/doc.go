// Package cmd holds helpers shared by the vethctl sub-commands to format
// help sections and render tabular output.
package cmd
