package instruction

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// raw is the wire shape of a decoded instruction's JSON payload: a flat
// accounts map (role name -> base58 pubkey) plus an args object whose
// numeric fields are emitted as digit strings (never JSON numbers) so u64
// and u128 values survive intact, matching the digit-string discipline this
// system's own output imposes.
type raw struct {
	Accounts map[string]string `json:"accounts"`
	Args     json.RawMessage   `json:"args"`
}

func parseRaw(payloadJSON string) (raw, error) {
	var r raw
	if err := json.Unmarshal([]byte(payloadJSON), &r); err != nil {
		return raw{}, fmt.Errorf("instruction: malformed payload json: %w", err)
	}
	return r, nil
}

func (r raw) account(name string) (string, error) {
	v, ok := r.Accounts[name]
	if !ok || v == "" {
		return "", fmt.Errorf("instruction: missing required account %q", name)
	}
	return v, nil
}

func (r raw) optionalAccount(name string) string {
	return r.Accounts[name]
}

func unmarshalArgs(r raw, v any) error {
	if len(r.Args) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Args, v); err != nil {
		return fmt.Errorf("instruction: malformed args: %w", err)
	}
	return nil
}

// U64 and U128 are digit-string wire types for 64/128-bit integers, decoded
// from JSON strings. They define no MarshalJSON of their own.
type U64 uint64

func (u *U64) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	var v uint64
	if _, err := fmt.Sscan(s, &v); err != nil {
		return fmt.Errorf("instruction: invalid u64 %q: %w", s, err)
	}
	*u = U64(v)
	return nil
}

type U128 struct {
	big.Int
}

func (u *U128) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if _, ok := u.Int.SetString(s, 10); !ok {
		return fmt.Errorf("instruction: invalid u128 %q", s)
	}
	return nil
}
