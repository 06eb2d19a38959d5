// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New("Test", "test")
	assert.Equal(t, "test", revert.Error())
	assert.Equal(t, "Test", revert.Code())

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
}

func Test_WrappedReverts(t *testing.T) {
	wrapped := errors.Wrap(ErrCooldownNotElapsed, "complete withdrawal")
	assert.True(t, IsRevertErr(wrapped))
	assert.True(t, errors.Is(wrapped, ErrCooldownNotElapsed))
	assert.False(t, errors.Is(wrapped, ErrInsufficientRewards))
	assert.Equal(t, "CooldownNotElapsed", AsRevert(wrapped).Code())
	assert.Nil(t, AsRevert(errors.New("plain")))
}
