package provisioning

import (
	"encoding/json"
	"io"
	"os"

	"github.com/bnb-chain/tss-lib/v2/ecdsa/keygen"
)

// WriteSaveData writes the local party's DKG save data to file.
func WriteSaveData(file string, save *keygen.LocalPartySaveData) error {
	data, err := json.Marshal(save)
	if err != nil {
		return err
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}

// ReadSaveData reads local party save data from file.
func ReadSaveData(file string) (*keygen.LocalPartySaveData, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	result := new(keygen.LocalPartySaveData)
	if err := json.Unmarshal(data, result); err != nil {
		return nil, err
	}
	return result, nil
}
