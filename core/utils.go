package core

import (
	"crypto/rand"
	"log"
	"math/big"
	"os"
	"path/filepath"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

var idChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomID returns a random alphanumeric identifier of length n.
func RandomID(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(idChars)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			log.Fatalf("core.RandomID: %v", err)
		}
		b[i] = idChars[idx.Int64()]
	}
	return string(b)
}

// Getwd tries to find the project root (the directory holding go.mod).
// go-test changes the working directory to the test package being run during tests... this breaks our code...
// see: https://stackoverflow.com/questions/23847003/golang-tests-and-working-directory
// this is a temporary fix for now :(
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if _, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
