// Package devkit provides scripted transports for exercising the mobile money
// clients without network access.
package devkit
