package registry

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"

	"github.com/atria-network/atria-agent/agent/storage"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/atria-network/atria-agent/agent/vcx/mocks"
	"github.com/golang/mock/gomock"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/stretchr/testify/require"
)

const dbPath = "registry_test.bolt"

func TestMain(m *testing.M) {
	setUp()
	code := m.Run()
	tearDown()
	os.Exit(code)
}

func setUp() {
	defer err2.Catch(func(err error) {
		fmt.Println("error on setup", err)
	})

	try.To(flag.Set("logtostderr", "true"))

	try.To(storage.Open(dbPath))
}

func tearDown() {
	try.To(storage.Close())

	os.Remove(dbPath)
	os.Remove(dbPath + "_backup")
}

func TestCreateSchema(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	attrs := []string{"email", "member_since"}

	sess := mocks.NewMockSession(ctrl)
	sess.EXPECT().CreateSchema(gomock.Any(), "Membership", "1.0", attrs).
		Return(vcx.LedgerRecord{ID: "schema:member:1.0", Data: []byte(`{"schema":1}`)}, nil)

	rep, err := CreateSchema(context.Background(), sess, "o_reg_test", "Membership", "1.0", attrs)
	require.NoError(t, err)
	require.Equal(t, "schema:member:1.0", rep.LedgerID)
	require.Equal(t, map[string]string{"email": "", "member_since": ""}, rep.Template)

	stored, found, err := storage.GetSchemaRep("schema:member:1.0")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Membership", stored.Name)
	require.Equal(t, attrs, stored.Attrs)

	byName, found, err := storage.SchemaRepByName("Membership")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "schema:member:1.0", byName.LedgerID)
}

func TestCreateCredDef(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	schema := &storage.SchemaRep{
		LedgerID: "schema:cd-src:1.0",
		Name:     "CredDefSource",
		Template: map[string]string{"name": ""},
	}

	sess := mocks.NewMockSession(ctrl)
	sess.EXPECT().CreateCredDef(gomock.Any(), "schema:cd-src:1.0", "cd-tag").
		Return(vcx.LedgerRecord{ID: "creddef:cd-src", Data: []byte(`{"cred_def":1}`)}, nil)

	rep, err := CreateCredDef(context.Background(), sess, "o_reg_test", schema, "cd-tag", schema.Template)
	require.NoError(t, err)
	require.Equal(t, "creddef:cd-src", rep.LedgerID)
	require.Equal(t, "schema:cd-src:1.0", rep.SchemaLedgerID)
	require.Equal(t, "o_reg_test", rep.WalletName)

	stored, found, err := storage.GetCredDefRep("creddef:cd-src")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte(`{"cred_def":1}`), stored.Data)
}

func TestProofReqTemplateRoundTrip(t *testing.T) {
	attrs := []vcx.ProofAttr{{Name: "first_name"}, {Name: "last_name"}}
	predicates := []vcx.ProofPredicate{{Name: "salary", PType: ">=", PValue: 50000}}

	_, err := CreateProofReqTemplate("Proof of Salary", "salary over threshold", attrs, predicates)
	require.NoError(t, err)

	gotAttrs, gotPreds, err := ProofReqTemplate("Proof of Salary")
	require.NoError(t, err)
	require.Equal(t, attrs, gotAttrs)
	require.Equal(t, predicates, gotPreds)
}

func TestProofReqTemplateNotFound(t *testing.T) {
	_, _, err := ProofReqTemplate("Proof of Nothing")
	require.ErrorIs(t, err, vcx.ErrNotFound)
}

func TestBootstrapTrusteeThenOrg(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sess := mocks.NewMockSession(ctrl)
	sess.EXPECT().CreateSchema(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, name, version string, _ []string) (vcx.LedgerRecord, error) {
			return vcx.LedgerRecord{ID: "schema:" + name + ":" + version}, nil
		}).Times(4)
	sess.EXPECT().CreateCredDef(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, schemaID, tag string) (vcx.LedgerRecord, error) {
			return vcx.LedgerRecord{ID: "creddef:" + tag}, nil
		}).Times(2)

	require.NoError(t, Bootstrap(context.Background(), sess, "o_trustee", RoleTrustee))

	for _, name := range []string{"Transcript", "Job-Certificate", "Driver-License", "Passport"} {
		_, found, err := storage.SchemaRepByName(name)
		require.NoError(t, err)
		require.True(t, found, name)
	}
	for _, tag := range []string{"Driver-License-o_trustee", "Passport-o_trustee"} {
		_, found, err := storage.GetCredDefRep("creddef:" + tag)
		require.NoError(t, err)
		require.True(t, found, tag)
	}
	for _, name := range []string{"Proof of Age", "Proof of Education", "Proof of Income"} {
		_, _, err := ProofReqTemplate(name)
		require.NoError(t, err, name)
	}

	// a plain org now builds on the trustee's shared schemas
	orgSess := mocks.NewMockSession(ctrl)
	orgSess.EXPECT().CreateSchema(gomock.Any(), "schema_o_faber", gomock.Any(),
		[]string{"name", "date", "degree", "age"}).
		Return(vcx.LedgerRecord{ID: "schema:faber-own"}, nil)
	orgSess.EXPECT().CreateCredDef(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, schemaID, tag string) (vcx.LedgerRecord, error) {
			return vcx.LedgerRecord{ID: "creddef:" + tag}, nil
		}).Times(3)

	require.NoError(t, Bootstrap(context.Background(), orgSess, "o_faber", "College"))

	for _, tag := range []string{"creddef_o_faber", "Transcript-o_faber", "Job-Certificate-o_faber"} {
		_, found, err := storage.GetCredDefRep("creddef:" + tag)
		require.NoError(t, err)
		require.True(t, found, tag)
	}

	defs, err := storage.CredDefRepsByWallet("o_faber")
	require.NoError(t, err)
	require.Len(t, defs, 3)
}
