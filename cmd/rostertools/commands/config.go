package commands

import (
	"errors"
	"fmt"
	"os"
	"path"

	ini "github.com/lars-t-hansen/ini"
)

// ~/.rostertools supplies per-command flag defaults: one ini section per
// command, one field per flag. Explicit flags always win; ApplyDefault only
// fills values the user left empty.
//
// MT: Constant after initialization
var (
	iniParser = ini.NewParser()
	iniStore  *ini.Store

	checkSection      = iniParser.AddSection("check")
	checkKeyField     = checkSection.AddString("key")
	checkFormat       = checkSection.AddString("format")
	checkStyle        = checkSection.AddString("style")
	checkMissing      = checkSection.AddString("missing")
	checkStoreURI     = checkSection.AddString("store-uri")
	historySection    = iniParser.AddSection("history")
	historyDatabase   = historySection.AddString("database-uri")
	serveSection      = iniParser.AddSection("serve")
	serveListen       = serveSection.AddString("listen")
	serveDatabase     = serveSection.AddString("database-uri")
	serveKafkaBrokers = serveSection.AddString("kafka-brokers")
)

func init() {
	home := os.Getenv("HOME")
	if home == "" {
		return
	}
	fn := path.Join(path.Clean(home), ".rostertools")
	input, err := os.Open(fn)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error in trying to open %s: %s\n", fn, err.Error())
		}
		return
	}
	defer input.Close()
	iniStore, err = iniParser.Parse(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in trying to parse %s: %s\n", fn, err.Error())
		return
	}
}

// ApplyDefault fills *sp from the config file field when the flag was left
// empty. Environment variables in the value are expanded.
func ApplyDefault(sp *string, f *ini.Field) bool {
	if *sp != "" || iniStore == nil || !f.Present(iniStore) {
		return false
	}
	*sp = os.ExpandEnv(f.StringVal(iniStore))
	return true
}
