// Package testsupport provides shared fixtures for faceoff tests.
package testsupport
