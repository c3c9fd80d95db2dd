package solana

import (
	"crypto/ed25519"
	"strings"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWithSeed(t *testing.T) {
	// Vector taken from the Solana SDK's test_create_with_seed
	zero := make(ed25519.PublicKey, ed25519.PublicKeySize)
	actual, err := CreateWithSeed(zero, "limber chicken: 4/45", zero)
	require.NoError(t, err)
	assert.Equal(t, "9h1HyLCW5dZnBVap8C5egQ9Z6pHyjsh5MNy83iPqqRuq", base58.Encode(actual))

	keys := generateKeys(t, 2)

	_, err = CreateWithSeed(keys[0], "☉", keys[1])
	assert.NoError(t, err)

	_, err = CreateWithSeed(keys[0], strings.Repeat("a", MaxSeedLength), keys[1])
	assert.NoError(t, err)

	_, err = CreateWithSeed(keys[0], strings.Repeat("a", MaxSeedLength+1), keys[1])
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)

	_, err = CreateWithSeed(keys[0][:31], "seed", keys[1])
	assert.Error(t, err)
	_, err = CreateWithSeed(keys[0], "seed", nil)
	assert.Error(t, err)
}

func TestCreateWithSeed_MatchesSDK(t *testing.T) {
	seeds := []string{"", "UserInfo", "UserPagesStats", "UsersPage_17", "POOL__ap"}
	for i := 0; i < 50; i++ {
		keys := generateKeys(t, 2)
		for _, seed := range seeds {
			actual, err := CreateWithSeed(keys[0], seed, keys[1])
			require.NoError(t, err)

			expected := common.CreateWithSeed(common.PublicKeyFromBytes(keys[0]), seed, common.PublicKeyFromBytes(keys[1]))
			assert.EqualValues(t, expected.Bytes(), []byte(actual))
		}
	}
}

func TestCreateWithSeed_Deterministic(t *testing.T) {
	keys := generateKeys(t, 2)

	a, err := CreateWithSeed(keys[0], "UserInfo", keys[1])
	require.NoError(t, err)
	b, err := CreateWithSeed(keys[0], "UserInfo", keys[1])
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := CreateWithSeed(keys[0], "UserPagesStats", keys[1])
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	d, err := CreateWithSeed(keys[1], "UserInfo", keys[0])
	require.NoError(t, err)
	assert.NotEqual(t, a, d)
}

func TestCreateProgramAddress(t *testing.T) {
	exceededSeed := make([]byte, MaxSeedLength+1)
	maxSeed := make([]byte, MaxSeedLength)

	// The typo here was taken directly from the Solana test case,
	// which was used to derive the expected outputs.
	publicKey, err := base58.Decode("SeedPubey1111111111111111111111111111111111")
	require.NoError(t, err)
	programID, err := base58.Decode("BPFLoader1111111111111111111111111111111111")
	require.NoError(t, err)

	_, err = CreateProgramAddress(programID, exceededSeed)
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)
	_, err = CreateProgramAddress(programID, []byte("short seed"), exceededSeed)
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)

	_, err = CreateProgramAddress(programID, maxSeed)
	assert.NoError(t, err)

	tooMany := make([][]byte, MaxSeeds+1)
	_, err = CreateProgramAddress(programID, tooMany...)
	assert.Equal(t, ErrTooManySeeds, err)

	cases := []struct {
		expected string
		input    [][]byte
	}{
		{
			expected: "3gF2KMe9KiC6FNVBmfg9i267aMPvK37FewCip4eGBFcT",
			input:    [][]byte{{}, {1}},
		},
		{
			expected: "7ytmC1nT1xY4RfxCV2ZgyA7UakC93do5ZdyhdF3EtPj7",
			input:    [][]byte{[]byte("☉")},
		},
		{
			expected: "HwRVBufQ4haG5XSgpspwKtNd3PC9GM9m1196uJW36vds",
			input:    [][]byte{[]byte("Talking"), []byte("Squirrels")},
		},
		{
			expected: "GUs5qLUfsEHkcMB9T38vjr18ypEhRuNWiePW2LoK4E3K",
			input:    [][]byte{publicKey},
		},
	}

	for _, tc := range cases {
		key, err := CreateProgramAddress(programID, tc.input...)
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, base58.Encode(key))
	}
}

func TestFindProgramAddress(t *testing.T) {
	for i := 0; i < 200; i++ {
		programID, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)

		pub, bump, err := FindProgramAddressAndBump(programID, []byte("Lil'"), []byte("Bits"))
		require.NoError(t, err)

		recreated, err := CreateProgramAddress(programID, []byte("Lil'"), []byte("Bits"), []byte{bump})
		require.NoError(t, err)
		assert.Equal(t, pub, recreated)
	}
}

func TestFindProgramAddress_Ref(t *testing.T) {
	references := []struct {
		programID string
		expected  string
	}{
		{
			programID: "4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM",
			expected:  "Bn9pAWUXWc5Kd849xTkQcHqiCbHUEizLFn4r5Cf8XYnd",
		},
		{
			programID: "8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh",
			expected:  "oDvUHiiGdMo31xYzjefAzUekWH8EbCKrxgs2FkyTs1S",
		},
		{
			programID: "CiDwVBFgWV9E5MvXWoLgnEgn2hK7rJikbvfWavzAQz3",
			expected:  "B2vBn2bmF9GuaGkebrm8oUqDC34pE6m4bagjNcVE6msv",
		},
		{
			programID: "GcdayuLaLyrdmUu324nahyv33G5poQdLUEZ1nEytDeP",
			expected:  "2mN5Nfq9v1EwTV9FPTHPESZ3XiZce9wi5PQoULFuxvev",
		},
		{
			programID: "LX3EUdRUBUa3TbsYXLEUdj9J3prXkWXvLYSWyYyc2Jj",
			expected:  "9CqF6oTZtW5zSeoLnZRoQmj3s2tXGPqifM1W8Z8LVE1z",
		},
	}

	for _, r := range references {
		programID, err := base58.Decode(r.programID)
		require.NoError(t, err)
		expected, err := base58.Decode(r.expected)
		require.NoError(t, err)

		actual, err := FindProgramAddress(programID, []byte("Lil'"), []byte("Bits"))
		assert.NoError(t, err)
		assert.EqualValues(t, expected, actual)
	}
}

func generateKeys(t *testing.T, n int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, n)
	for i := 0; i < n; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = pub
	}
	return keys
}
