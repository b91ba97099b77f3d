/*
Package commands holds the helpers shared by the application binaries.
The abci server commands live in the server subpackage.
*/
package commands

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
)

// Example will be written out to a file, .json and .bin
// Filename should have no path and no extension
type Example struct {
	Filename string
	Obj      vaultswap.Marshaller
}

// TestGenCmd generates sample binary and json encodings
// of various objects to test clients against.
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	for _, ex := range examples {
		if err := writeExample(outdir, ex); err != nil {
			return errors.Wrap(err, ex.Filename)
		}
	}
	return nil
}

func writeExample(outdir string, ex Example) error {
	js, err := json.MarshalIndent(ex.Obj, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	jsFile := filepath.Join(outdir, ex.Filename+".json")
	if err := ioutil.WriteFile(jsFile, js, 0644); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	bin, err := ex.Obj.Marshal()
	if err != nil {
		return err
	}
	binFile := filepath.Join(outdir, ex.Filename+".bin")
	if err := ioutil.WriteFile(binFile, bin, 0644); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return nil
}
