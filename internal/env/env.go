package env

import (
	"strings"

	"github.com/joho/godotenv"
)

// DefaultBuildDir is where premake writes generated files unless told otherwise.
const DefaultBuildDir = "build"

// Compilers reads the CC and CXX keys of a dotenv file.
// Missing keys come back empty.
func Compilers(path string) (cc, cxx string, err error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(vars["CC"]), strings.TrimSpace(vars["CXX"]), nil
}
