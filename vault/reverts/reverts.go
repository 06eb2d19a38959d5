// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts holds the recoverable business errors returned by the
// staking model. A revert rejects an intent without touching state; callers
// are expected to surface it rather than abort.
package reverts

import (
	"errors"
)

type ErrRevert struct {
	code    string
	message string
}

func New(code, message string) *ErrRevert {
	return &ErrRevert{
		code:    code,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Code returns the stable machine readable identifier of the revert.
func (e *ErrRevert) Code() string {
	return e.code
}

func IsRevertErr(err any) bool {
	return AsRevert(err) != nil
}

// AsRevert returns the revert wrapped in err, or nil.
func AsRevert(err any) *ErrRevert {
	if err == nil {
		return nil
	}
	e, ok := err.(error)
	if !ok {
		return nil
	}
	var ve *ErrRevert
	if errors.As(e, &ve) {
		return ve
	}
	return nil
}

var (
	ErrInvalidStakeAmount       = New("InvalidStakeAmount", "stake amount must be greater than 0")
	ErrInsufficientRewards      = New("InsufficientRewards", "no pending rewards to claim")
	ErrInvalidWithdrawalAmount  = New("InvalidWithdrawalAmount", "withdrawal amount must be greater than 0 and not exceed the staked amount")
	ErrWithdrawalAlreadyPending = New("WithdrawalAlreadyPending", "a withdrawal request is already pending")
	ErrCooldownNotElapsed       = New("CooldownNotElapsed", "withdrawal cooldown has not elapsed")
	ErrWithdrawalNotPending     = New("WithdrawalNotPending", "no pending withdrawal request")
)
