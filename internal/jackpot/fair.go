package jackpot

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	mathrand "math/rand/v2"
	"reflect"

	"jackpotsim/internal/betting"
)

// Seeds identify the random source behind a generated slip. The commitment is
// published with the slip so the server seed cannot be swapped afterwards.
type Seeds struct {
	ServerSeed string `json:"server_seed"`
	ClientSeed string `json:"client_seed"`
	Nonce      int64  `json:"nonce"`
	Commitment string `json:"commitment"`
}

// GenerateSeed creates a cryptographically secure random seed
func GenerateSeed() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// HashCommitment creates a SHA256 hash of the seed for commitment
func HashCommitment(seed string) string {
	h := sha256.New()
	h.Write([]byte(seed))
	return hex.EncodeToString(h.Sum(nil))
}

// SeededRand derives a PCG source from HMAC-SHA256(serverSeed, "clientSeed:nonce").
// The same triple always yields the same draws.
func SeededRand(serverSeed, clientSeed string, nonce int64) *mathrand.Rand {
	h := hmac.New(sha256.New, []byte(serverSeed))
	h.Write([]byte(fmt.Sprintf("%s:%d", clientSeed, nonce)))
	sum := h.Sum(nil)
	return mathrand.New(mathrand.NewPCG(
		binary.BigEndian.Uint64(sum[:8]),
		binary.BigEndian.Uint64(sum[8:16]),
	))
}

// CryptoRand returns a source seeded from crypto/rand for draws nobody needs to replay.
func CryptoRand() *mathrand.Rand {
	var seed [16]byte
	rand.Read(seed[:])
	return mathrand.New(mathrand.NewPCG(
		binary.BigEndian.Uint64(seed[:8]),
		binary.BigEndian.Uint64(seed[8:]),
	))
}

// VerifyRandomSlip lets players check that a random slip came from the published seeds.
func VerifyRandomSlip(serverSeed, clientSeed string, nonce int64, totalGames int, rules betting.Rules, claimed betting.Selections) bool {
	rng := SeededRand(serverSeed, clientSeed, nonce)
	return reflect.DeepEqual(betting.Randomize(totalGames, rng, rules), claimed)
}
