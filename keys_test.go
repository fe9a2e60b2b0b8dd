// Copyright 2021 github.com/gagliardetto
// This file has been modified by github.com/gagliardetto
//
// Copyright 2020 dfuse Platform Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package solana

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicKeyFromBytes(t *testing.T) {
	tests := []struct {
		name     string
		inHex    string
		expected PublicKey
	}{
		{
			"empty",
			"",
			MustPublicKeyFromBase58("11111111111111111111111111111111"),
		},
		{
			"smaller than required",
			"010203040506",
			MustPublicKeyFromBase58("4wBqpZM9k69W87zdYXT2bRtLViWqTiJV3i2Kn9q7S6j"),
		},
		{
			"equal to 32 bytes",
			"0102030405060102030405060102030405060102030405060102030405060101",
			MustPublicKeyFromBase58("4wBqpZM9msxygzsdeLPq6Zw3LoiAxJk3GjtKPpqkcsi"),
		},
		{
			"longer than required",
			"0102030405060102030405060102030405060102030405060102030405060101FFFFFFFFFF",
			MustPublicKeyFromBase58("4wBqpZM9msxygzsdeLPq6Zw3LoiAxJk3GjtKPpqkcsi"),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			bytes, err := hex.DecodeString(test.inHex)
			require.NoError(t, err)

			actual := PublicKeyFromBytes(bytes)
			assert.Equal(t, test.expected, actual, "%s != %s", test.expected, actual)
		})
	}
}

func TestPublicKeyFromBase58(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		expected    PublicKey
		expectedErr error
	}{
		{
			"hand crafted",
			"Cra8woRQhnHsGAmFWcCN1m7A9J44ykNfGpehi6dMBuKR",
			MustPublicKeyFromBase58("Cra8woRQhnHsGAmFWcCN1m7A9J44ykNfGpehi6dMBuKR"),
			nil,
		},
		{
			"hand crafted error",
			"Cra8woRQhnHsGAmFWcCN1m7A9J44ykNfGpehi6dMBuK",
			zeroPublicKey,
			errors.New("invalid length, expected 32, got 31"),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := PublicKeyFromBase58(test.in)
			if test.expectedErr == nil {
				require.NoError(t, err)
				assert.Equal(t, test.expected, actual)
			} else {
				assert.Equal(t, test.expectedErr, err)
			}
		})
	}
}

func TestPublicKey_MarshalText(t *testing.T) {
	keyString := "4wBqpZM9k69W87zdYXT2bRtLViWqTiJV3i2Kn9q7S6j"
	keyParsed := MustPublicKeyFromBase58(keyString)

	var key PublicKey
	err := key.UnmarshalText([]byte(keyString))
	require.NoError(t, err)

	assert.True(t, keyParsed.Equals(key))

	keyText, err := key.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, []byte(keyString), keyText)
}

func TestPublicKeySlice(t *testing.T) {
	slice := make(PublicKeySlice, 0)
	require.False(t, slice.Has(SystemProgramID))

	slice.Append(SystemProgramID)
	require.True(t, slice.Has(SystemProgramID))
	require.Len(t, slice, 1)

	slice.UniqueAppend(SystemProgramID)
	require.Len(t, slice, 1)
	slice.Append(TokenProgramID)
	require.Len(t, slice, 2)
	require.True(t, slice.Has(TokenProgramID))
}

func TestIsNativeProgramID(t *testing.T) {
	require.True(t, isNativeProgramID(SystemProgramID))
	require.False(t, isNativeProgramID(TokenProgramID))
}

func TestCreateProgramAddress(t *testing.T) {
	programID := MustPublicKeyFromBase58("BPFLoaderUpgradeab1e11111111111111111111111")
	publicKey := MustPublicKeyFromBase58("SeedPubey1111111111111111111111111111111111")

	{
		got, err := CreateProgramAddress([][]byte{
			{},
			{1},
		}, programID)
		require.NoError(t, err)
		require.True(t, got.Equals(MustPublicKeyFromBase58("BwqrghZA2htAcqq8dzP1WDAhTXYTYWj7CHxF5j7TDBAe")))
	}

	{
		got, err := CreateProgramAddress([][]byte{
			[]byte("☉"),
			{0},
		}, programID)
		require.NoError(t, err)
		require.True(t, got.Equals(MustPublicKeyFromBase58("13yWmRpaTR4r5nAktwLqMpRNr28tnVUZw26rTvPSSB19")))
	}

	{
		got, err := CreateProgramAddress([][]byte{
			[]byte("Talking"),
			[]byte("Squirrels"),
		}, programID)
		require.NoError(t, err)
		require.True(t, got.Equals(MustPublicKeyFromBase58("2fnQrngrQT4SeLcdToJAD96phoEjNL2man2kfRLCASVk")))
	}

	{
		got, err := CreateProgramAddress([][]byte{
			publicKey[:],
			{1},
		}, programID)
		require.NoError(t, err)
		require.True(t, got.Equals(MustPublicKeyFromBase58("976ymqVnfE32QFe6NfGDctSvVa36LWnvYxhU6G2232YL")))
	}
}

// P2: find_program_address returns an off-curve point with the highest
// valid bump; swapping any byte of the seed changes the PDA.
func TestFindProgramAddress_HighestBumpAndOffCurve(t *testing.T) {
	for i := 0; i < 200; i++ {
		programID, _, err := NewRandomPrivateKey()
		require.NoError(t, err)

		address, bump, err := FindProgramAddress([][]byte{
			[]byte("Lil'"),
			[]byte("Bits"),
		}, programID)
		require.NoError(t, err)
		require.False(t, address.IsOnCurve())

		got, err := CreateProgramAddress([][]byte{
			[]byte("Lil'"),
			[]byte("Bits"),
			{bump},
		}, programID)
		require.NoError(t, err)
		require.Equal(t, address, got)

		for b := uint16(bump) + 1; b <= 255; b++ {
			_, err := CreateProgramAddress([][]byte{
				[]byte("Lil'"),
				[]byte("Bits"),
				{byte(b)},
			}, programID)
			require.Error(t, err, "bump %d above the found bump must be off-curve-invalid or unreachable", b)
		}
	}
}

func TestFindHTLCAddress_OrderIDSensitivity(t *testing.T) {
	programID := DefaultHTLCProgramID

	pdaA, _, err := FindHTLCAddress("swap-1", programID)
	require.NoError(t, err)

	pdaB, _, err := FindHTLCAddress("swap-2", programID)
	require.NoError(t, err)

	assert.NotEqual(t, pdaA, pdaB)
	assert.False(t, pdaA.IsOnCurve())
	assert.False(t, pdaB.IsOnCurve())

	// Deterministic: re-deriving the same order_id yields the same PDA.
	pdaAAgain, _, err := FindHTLCAddress("swap-1", programID)
	require.NoError(t, err)
	assert.Equal(t, pdaA, pdaAAgain)
}

// P1: associated_token_address is deterministic and off the ed25519 curve,
// and differs between the legacy and the 2022 token program.
func TestFindAssociatedTokenAddress_Deterministic(t *testing.T) {
	wallet := MustPublicKeyFromBase58("AAAGuCgkmxYDTiBvzx1QT5XEjqXPRtQaiEXQo4gatD2o")
	mint := MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")

	ata, _, err := FindAssociatedTokenAddress(wallet, mint, TokenProgramID)
	require.NoError(t, err)
	assert.False(t, ata.IsOnCurve())

	ataAgain, _, err := FindAssociatedTokenAddress(wallet, mint, TokenProgramID)
	require.NoError(t, err)
	assert.Equal(t, ata, ataAgain)

	ata2022, _, err := FindAssociatedTokenAddress(wallet, mint, Token2022ProgramID)
	require.NoError(t, err)
	assert.NotEqual(t, ata, ata2022)
}

// Scenario 1/6 from the spec's concrete end-to-end scenarios: known-answer
// ATA addresses for a legacy-program mint and a Token-2022 mint.
func TestFindAssociatedTokenAddress_KnownAnswers(t *testing.T) {
	wallet := MustPublicKeyFromBase58("AAAGuCgkmxYDTiBvzx1QT5XEjqXPRtQaiEXQo4gatD2o")

	usdc := MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	ata, _, err := FindAssociatedTokenAddress(wallet, usdc, TokenProgramID)
	require.NoError(t, err)
	assert.Equal(t, MustPublicKeyFromBase58("Cra8woRQhnHsGAmFWcCN1m7A9J44ykNfGpehi6dMBuKR"), ata)

	token2022Mint := MustPublicKeyFromBase58("CKfatsPMUf8SkiURsDXs7eK6GWb4Jsd6UDbs7twMCWxo")
	ata2022, _, err := FindAssociatedTokenAddress(wallet, token2022Mint, Token2022ProgramID)
	require.NoError(t, err)
	assert.Equal(t, MustPublicKeyFromBase58("GPtCoaz35vdCrFbyhxcRrkYvECrUkrBX6CoRZEv8EQDw"), ata2022)
}
