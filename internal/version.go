package internal

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/hfchat/internal/models"
	"github.com/baalimago/hfchat/internal/utils"
)

// Set with buildflag if built in pipeline and not using go install
var BuildVersion = ""

// printVersion prints the version, and with DEBUG set, the dependency list.
func printVersion() (models.Querier, error) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, errors.New("failed to read build info")
	}
	version := BuildVersion
	if version == "" {
		version = bi.Main.Version
	}
	fmt.Println("version: " + version)
	if misc.Truthy(os.Getenv("DEBUG")) {
		for _, dep := range bi.Deps {
			fmt.Printf("%s %s\n", dep.Path, dep.Version)
		}
	}
	return nil, utils.ErrUserInitiatedExit
}
