package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/AgroVault/AgroVault-Backend/utils"
	"github.com/speps/go-hashids/v2"
)

type ID int64

var (
	hd        = hashids.NewData()
	dbHash, _ = hashids.NewWithData(hd)
)

func init() {
	hd.MinLength = 32
	if c, err := utils.LoadConfig(utils.EnvPath); err == nil {
		hd.Salt = c.SigningKey
	} else {
		// No usable config (tests, tooling): run with an unsalted hash.
		log.Printf("Warning: hashed IDs running without a salt: %v", err)
	}
	h, err := hashids.NewWithData(hd)
	if err != nil {
		panic(fmt.Errorf("could not initialise hashed IDs: %v", err))
	}
	dbHash = h
}

// MarshalJSON implements the encoding json interface.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == 0 {
		return json.Marshal(nil)
	}
	result, err := dbHash.EncodeInt64([]int64{int64(id)})
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

// UnmarshalJSON implements the encoding json interface.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*id = 0
		return nil
	}
	result, err := dbHash.DecodeInt64WithError(s)
	if err != nil {
		return err
	}
	if len(result) == 0 {
		return errors.New("invalid ID")
	}
	*id = ID(result[0])
	return nil
}

// Scan implements the Scanner interface.
func (id *ID) Scan(value interface{}) error {
	if value == nil {
		*id = 0
		return nil
	}

	switch v := value.(type) {
	case int64:
		*id = ID(v)
	case []byte:
		return id.UnmarshalJSON(v)
	default:
		return errors.New("unexpected type for ID")
	}
	return nil
}

// Value implements the driver Valuer interface.
func (id ID) Value() (driver.Value, error) {
	return int64(id), nil
}

// DecodeID turns a hashed path parameter back into a database ID.
func DecodeID(s string) (int64, error) {
	result, err := dbHash.DecodeInt64WithError(s)
	if err != nil {
		return 0, err
	}
	if len(result) == 0 {
		return 0, errors.New("invalid ID")
	}
	return result[0], nil
}
