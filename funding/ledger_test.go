// Copyright 2026 The NFT-Gated Historical Archives authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package funding

import (
	"io"
	"log/slog"
	"testing"

	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/chain"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/database"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/database/models"
	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testOwner       = chain.Identity("addr_test_owner")
	testGovernance  = chain.Identity("addr_test_governance")
	testFunding     = chain.Identity("addr_test_funding")
	testOracle      = chain.Identity("addr_test_oracle")
	testDepositor   = chain.Identity("addr_test_depositor")
	testInstitution = chain.Identity("addr_test_institution")
)

type testEnv struct {
	db      *database.Database
	runtime *chain.Runtime
	ledger  *Ledger
}

func setupTestLedger(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	db, err := database.New(&database.Config{
		Logger:  logger,
		DataDir: t.TempDir(),
	})
	require.NoError(t, err, "failed to create database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	runtime := chain.NewRuntime(chain.RuntimeConfig{
		Logger: logger,
		GenesisAccounts: map[chain.Identity]uint64{
			testDepositor: 10000,
		},
		GenesisHeight: 100,
	})
	ledger, err := New(Config{
		Logger:         logger,
		Database:       db,
		Runtime:        runtime,
		LedgerAddr:     testFunding,
		GovernanceAddr: testGovernance,
		OracleAddr:     testOracle,
		OwnerAddr:      testOwner,
	})
	require.NoError(t, err, "failed to create funding ledger")
	return &testEnv{
		db:      db,
		runtime: runtime,
		ledger:  ledger,
	}
}

// createProject invokes project creation the way the governance engine does,
// inside a single operation and metadata transaction
func (env *testEnv) createProject(
	t *testing.T,
	caller chain.Identity,
	institution chain.Identity,
	totalBudget uint64,
	milestones []uint64,
) (uint64, error) {
	t.Helper()
	var idx uint64
	err := env.runtime.Step(caller, func(op *chain.Op) error {
		txn := env.db.Transaction(true)
		return txn.Do(func(txn *database.Txn) error {
			var err error
			idx, err = env.ledger.CreateProject(
				op,
				txn,
				caller,
				institution,
				totalBudget,
				milestones,
				"Digitize glass plate negatives",
				"Digitize and catalogue the glass plate negative collection",
			)
			return err
		})
	})
	return idx, err
}

func TestDeposit(t *testing.T) {
	env := setupTestLedger(t)

	require.NoError(t, env.ledger.Deposit(testDepositor, 1500))

	balance, err := env.ledger.TreasuryBalance()
	require.NoError(t, err)
	assert.Equal(t, uint64(1500), balance)
	assert.Equal(t, uint64(1500), env.runtime.Balance(testFunding))
	assert.Equal(t, uint64(8500), env.runtime.Balance(testDepositor))

	err = env.ledger.Deposit(testDepositor, 0)
	require.ErrorIs(t, err, ErrZeroAmount)

	// A deposit beyond the caller's balance moves nothing
	err = env.ledger.Deposit(testDepositor, 100000)
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.KindInsufficientFunds))
	balance, err = env.ledger.TreasuryBalance()
	require.NoError(t, err)
	assert.Equal(t, uint64(1500), balance)
}

func TestCreateProjectAuthorization(t *testing.T) {
	env := setupTestLedger(t)

	_, err := env.createProject(
		t,
		"addr_test_intruder",
		testInstitution,
		1000,
		[]uint64{400, 600},
	)
	require.ErrorIs(t, err, ErrNotGovernance)
	assert.True(t, fault.Is(err, fault.KindNotAuthorized))

	idx, err := env.createProject(
		t,
		testGovernance,
		testInstitution,
		1000,
		[]uint64{400, 600},
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), idx)

	idx, err = env.createProject(
		t,
		testGovernance,
		testInstitution,
		500,
		[]uint64{500},
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), idx)
}

func TestCreateProjectValidation(t *testing.T) {
	env := setupTestLedger(t)

	// The schedule is revalidated on this side of the trust boundary
	_, err := env.createProject(
		t,
		testGovernance,
		testInstitution,
		1000,
		[]uint64{400, 500},
	)
	require.ErrorIs(t, err, models.ErrMilestoneSumMismatch)

	// The institution cannot be the calling identity
	_, err = env.createProject(
		t,
		testGovernance,
		testGovernance,
		1000,
		[]uint64{400, 600},
	)
	require.ErrorIs(t, err, ErrSelfInstitution)

	// Failed creations consume no project index
	idx, err := env.createProject(
		t,
		testGovernance,
		testInstitution,
		1000,
		[]uint64{400, 600},
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), idx)
}

func TestMilestoneFlow(t *testing.T) {
	env := setupTestLedger(t)

	require.NoError(t, env.ledger.Deposit(testDepositor, 1000))
	idx, err := env.createProject(
		t,
		testGovernance,
		testInstitution,
		1000,
		[]uint64{400, 600},
	)
	require.NoError(t, err)

	require.NoError(t, env.ledger.VerifyMilestone(testOracle, idx, 0))

	// Anyone may trigger the disbursement once the proof exists
	amount, err := env.ledger.DisburseMilestone("addr_test_anyone", idx, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), amount)
	assert.Equal(t, uint64(400), env.runtime.Balance(testInstitution))

	balance, err := env.ledger.TreasuryBalance()
	require.NoError(t, err)
	assert.Equal(t, uint64(600), balance)

	project, err := env.ledger.GetProject(idx)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), project.CurrentMilestone)
	assert.Equal(t, uint64(400), project.Disbursed)
	assert.Equal(t, uint64(600), project.Remaining())
	assert.Equal(t, models.ProjectStatusActive, project.Status)

	// The final milestone completes the project
	require.NoError(t, env.ledger.VerifyMilestone(testOracle, idx, 1))
	amount, err = env.ledger.DisburseMilestone("addr_test_anyone", idx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(600), amount)

	project, err = env.ledger.GetProject(idx)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusCompleted, project.Status)
	assert.Equal(t, uint64(0), project.Remaining())
	assert.Equal(t, uint64(1000), env.runtime.Balance(testInstitution))

	// A completed project accepts no further activity
	_, err = env.ledger.DisburseMilestone("addr_test_anyone", idx, 1)
	require.ErrorIs(t, err, ErrProjectClosed)
	err = env.ledger.VerifyMilestone(testOracle, idx, 1)
	require.ErrorIs(t, err, models.ErrProjectNotFound)
}

func TestVerifyMilestoneAuthorization(t *testing.T) {
	env := setupTestLedger(t)

	idx, err := env.createProject(
		t,
		testGovernance,
		testInstitution,
		1000,
		[]uint64{400, 600},
	)
	require.NoError(t, err)

	err = env.ledger.VerifyMilestone("addr_test_intruder", idx, 0)
	require.ErrorIs(t, err, ErrNotOracle)
	assert.True(t, fault.Is(err, fault.KindNotAuthorized))
}

func TestVerifyMilestoneOrdering(t *testing.T) {
	env := setupTestLedger(t)

	idx, err := env.createProject(
		t,
		testGovernance,
		testInstitution,
		1000,
		[]uint64{400, 600},
	)
	require.NoError(t, err)

	err = env.ledger.VerifyMilestone(testOracle, idx, 1)
	require.ErrorIs(t, err, ErrMilestoneNotReady)
	assert.True(t, fault.Is(err, fault.KindNotReady))

	err = env.ledger.VerifyMilestone(testOracle, idx, 5)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)

	require.NoError(t, env.ledger.VerifyMilestone(testOracle, idx, 0))
	err = env.ledger.VerifyMilestone(testOracle, idx, 0)
	require.ErrorIs(t, err, ErrMilestoneAlreadyVerified)
	assert.True(t, fault.Is(err, fault.KindAlreadyDone))

	err = env.ledger.VerifyMilestone(testOracle, 42, 0)
	require.ErrorIs(t, err, models.ErrProjectNotFound)
}

func TestDisburseWithoutProof(t *testing.T) {
	env := setupTestLedger(t)

	require.NoError(t, env.ledger.Deposit(testDepositor, 1000))
	idx, err := env.createProject(
		t,
		testGovernance,
		testInstitution,
		1000,
		[]uint64{400, 600},
	)
	require.NoError(t, err)

	_, err = env.ledger.DisburseMilestone("addr_test_anyone", idx, 0)
	require.ErrorIs(t, err, ErrProofNotVerified)
	assert.True(t, fault.Is(err, fault.KindNotReady))

	_, err = env.ledger.DisburseMilestone("addr_test_anyone", 42, 0)
	require.ErrorIs(t, err, models.ErrProjectNotFound)
}

func TestDisburseInsufficientTreasury(t *testing.T) {
	env := setupTestLedger(t)

	// Treasury holds less than the first tranche
	require.NoError(t, env.ledger.Deposit(testDepositor, 300))
	idx, err := env.createProject(
		t,
		testGovernance,
		testInstitution,
		1000,
		[]uint64{400, 600},
	)
	require.NoError(t, err)
	require.NoError(t, env.ledger.VerifyMilestone(testOracle, idx, 0))

	_, err = env.ledger.DisburseMilestone("addr_test_anyone", idx, 0)
	require.ErrorIs(t, err, ErrInsufficientTreasury)
	assert.True(t, fault.Is(err, fault.KindInsufficientFunds))

	// The failed attempt changed nothing
	project, err := env.ledger.GetProject(idx)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), project.CurrentMilestone)
	assert.Equal(t, uint64(0), project.Disbursed)
	balance, err := env.ledger.TreasuryBalance()
	require.NoError(t, err)
	assert.Equal(t, uint64(300), balance)

	// Topping the treasury up unblocks the disbursement
	require.NoError(t, env.ledger.Deposit(testDepositor, 700))
	amount, err := env.ledger.DisburseMilestone("addr_test_anyone", idx, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), amount)
}

func TestDisburseTwice(t *testing.T) {
	env := setupTestLedger(t)

	require.NoError(t, env.ledger.Deposit(testDepositor, 1000))
	idx, err := env.createProject(
		t,
		testGovernance,
		testInstitution,
		1000,
		[]uint64{400, 600},
	)
	require.NoError(t, err)
	require.NoError(t, env.ledger.VerifyMilestone(testOracle, idx, 0))
	_, err = env.ledger.DisburseMilestone("addr_test_anyone", idx, 0)
	require.NoError(t, err)

	_, err = env.ledger.DisburseMilestone("addr_test_anyone", idx, 0)
	require.ErrorIs(t, err, ErrMilestoneAlreadyDisbursed)
	assert.True(t, fault.Is(err, fault.KindAlreadyDone))

	// The next milestone has no proof yet
	_, err = env.ledger.DisburseMilestone("addr_test_anyone", idx, 1)
	require.ErrorIs(t, err, ErrProofNotVerified)
}

func TestCancelProject(t *testing.T) {
	env := setupTestLedger(t)

	require.NoError(t, env.ledger.Deposit(testDepositor, 1000))
	idx, err := env.createProject(
		t,
		testGovernance,
		testInstitution,
		1000,
		[]uint64{400, 600},
	)
	require.NoError(t, err)
	require.NoError(t, env.ledger.VerifyMilestone(testOracle, idx, 0))
	_, err = env.ledger.DisburseMilestone("addr_test_anyone", idx, 0)
	require.NoError(t, err)

	err = env.ledger.CancelProject("addr_test_intruder", idx)
	require.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, env.ledger.CancelProject(testOwner, idx))

	project, err := env.ledger.GetProject(idx)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusCancelled, project.Status)
	assert.False(t, project.Approved)

	// Undisbursed budget stays pooled in the treasury
	balance, err := env.ledger.TreasuryBalance()
	require.NoError(t, err)
	assert.Equal(t, uint64(600), balance)

	// A cancelled project is closed to the whole milestone protocol
	err = env.ledger.VerifyMilestone(testOracle, idx, 1)
	require.ErrorIs(t, err, models.ErrProjectNotFound)
	_, err = env.ledger.DisburseMilestone("addr_test_anyone", idx, 1)
	require.ErrorIs(t, err, ErrProjectClosed)
	err = env.ledger.CancelProject(testOwner, idx)
	require.ErrorIs(t, err, ErrProjectClosed)
}

func TestEmergencyWithdraw(t *testing.T) {
	env := setupTestLedger(t)

	require.NoError(t, env.ledger.Deposit(testDepositor, 1000))

	err := env.ledger.EmergencyWithdraw("addr_test_intruder", 500, "addr_test_rescue")
	require.ErrorIs(t, err, ErrNotOwner)

	err = env.ledger.EmergencyWithdraw(testOwner, 5000, "addr_test_rescue")
	require.ErrorIs(t, err, ErrInsufficientTreasury)

	require.NoError(
		t,
		env.ledger.EmergencyWithdraw(testOwner, 500, "addr_test_rescue"),
	)
	balance, err := env.ledger.TreasuryBalance()
	require.NoError(t, err)
	assert.Equal(t, uint64(500), balance)
	assert.Equal(t, uint64(500), env.runtime.Balance("addr_test_rescue"))
}

func TestSetOracle(t *testing.T) {
	env := setupTestLedger(t)

	idx, err := env.createProject(
		t,
		testGovernance,
		testInstitution,
		1000,
		[]uint64{400, 600},
	)
	require.NoError(t, err)

	err = env.ledger.SetOracle("addr_test_intruder", "addr_test_oracle2")
	require.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, env.ledger.SetOracle(testOwner, "addr_test_oracle2"))

	// The old oracle is no longer trusted
	err = env.ledger.VerifyMilestone(testOracle, idx, 0)
	require.ErrorIs(t, err, ErrNotOracle)
	require.NoError(t, env.ledger.VerifyMilestone("addr_test_oracle2", idx, 0))
}

func TestValueConservation(t *testing.T) {
	env := setupTestLedger(t)

	require.NoError(t, env.ledger.Deposit(testDepositor, 2000))
	idx, err := env.createProject(
		t,
		testGovernance,
		testInstitution,
		1000,
		[]uint64{400, 600},
	)
	require.NoError(t, err)
	require.NoError(t, env.ledger.VerifyMilestone(testOracle, idx, 0))
	_, err = env.ledger.DisburseMilestone("addr_test_anyone", idx, 0)
	require.NoError(t, err)
	require.NoError(
		t,
		env.ledger.EmergencyWithdraw(testOwner, 100, "addr_test_rescue"),
	)

	// deposits - disbursements - withdrawals == treasury balance, and the
	// treasury row mirrors the ledger's native value account
	treasury, err := env.db.GetTreasury(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(2000), treasury.TotalDeposited)
	assert.Equal(t, uint64(500), treasury.TotalWithdrawn)
	assert.Equal(
		t,
		treasury.TotalDeposited-treasury.TotalWithdrawn,
		treasury.Balance,
	)
	assert.Equal(t, treasury.Balance, env.runtime.Balance(testFunding))
}
