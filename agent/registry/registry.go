/*
Package registry manages credential schemas and credential definitions: it
writes them to the ledger through the agency session and keeps a local row
per ledger id. Bootstrap seeds the role-based defaults a fresh deployment
needs before any exchange can run.
*/
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/atria-network/atria-agent/agent/storage"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// RoleTrustee marks the org that seeds the shared default schemas.
const RoleTrustee = "Trustee"

// CreateSchema writes a schema to the ledger and persists its registry row.
// A ledger id collision surfaces as the storage error it is; no dedup here.
func CreateSchema(ctx context.Context, sess vcx.Session, walletName,
	name, version string, attrs []string) (_ *storage.SchemaRep, err error) {

	defer err2.Handle(&err, "create schema")

	rec := try.To1(sess.CreateSchema(ctx, name, version, attrs))

	template := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		template[attr] = ""
	}
	rep := &storage.SchemaRep{
		LedgerID: rec.ID,
		Name:     name,
		Version:  version,
		Attrs:    attrs,
		Template: template,
		Data:     rec.Data,
	}
	try.To(storage.AddSchemaRep(rep))

	glog.V(1).Infof("schema %s %s registered as %s", name, version, rec.ID)
	return rep, nil
}

// CreateCredDef writes a credential definition against the schema and
// persists its registry row bound to the issuing wallet.
func CreateCredDef(ctx context.Context, sess vcx.Session, walletName string,
	schema *storage.SchemaRep, name string, template map[string]string) (_ *storage.CredDefRep, err error) {

	defer err2.Handle(&err, "create cred def")

	rec := try.To1(sess.CreateCredDef(ctx, schema.LedgerID, name))

	rep := &storage.CredDefRep{
		LedgerID:       rec.ID,
		SchemaLedgerID: schema.LedgerID,
		WalletName:     walletName,
		Name:           name,
		Template:       template,
		Data:           rec.Data,
	}
	try.To(storage.AddCredDefRep(rep))

	glog.V(1).Infof("cred def %s registered as %s", name, rec.ID)
	return rep, nil
}

// CreateProofReqTemplate stores a named attr/predicate template for later
// proof requests.
func CreateProofReqTemplate(name, description string,
	attrs []vcx.ProofAttr, predicates []vcx.ProofPredicate) (_ *storage.ProofReqRep, err error) {

	defer err2.Handle(&err, "create proof request template")

	attrsJSON := try.To1(json.Marshal(attrs))
	predsJSON := try.To1(json.Marshal(predicates))

	rep := &storage.ProofReqRep{
		Name:        name,
		Description: description,
		Attrs:       attrsJSON,
		Predicates:  predsJSON,
	}
	try.To(storage.AddProofReqRep(rep))
	return rep, nil
}

// ProofReqTemplate loads a stored template back into facade form.
func ProofReqTemplate(name string) (attrs []vcx.ProofAttr, predicates []vcx.ProofPredicate, err error) {
	defer err2.Handle(&err, "proof request template")

	rep, found := try.To2(storage.GetProofReqRep(name))
	if !found {
		return nil, nil, fmt.Errorf("template %s: %w", name, vcx.ErrNotFound)
	}
	try.To(json.Unmarshal(rep.Attrs, &attrs))
	try.To(json.Unmarshal(rep.Predicates, &predicates))
	return attrs, predicates, nil
}

// randomSchemaVersion gives every seeded schema a fresh version so repeated
// bootstraps on a shared ledger do not collide.
func randomSchemaVersion() string {
	return fmt.Sprintf("%d.%d.%d", rand.Intn(100)+1, rand.Intn(100), rand.Intn(100))
}

// defaultSchemas are the shared schemas the trustee publishes for everyone.
var defaultSchemas = map[string][]string{
	"Transcript": {
		"first_name", "last_name", "degree", "status", "year", "average", "ssn",
	},
	"Job-Certificate": {
		"first_name", "last_name", "ssn", "salary", "employee_status", "experience",
	},
	"Driver-License": {
		"last_name", "first_name", "middle_name", "dl_number", "dl_class",
		"issued_date", "expire_date", "birth_date", "height", "weight",
		"sex", "eyes", "hair", "address",
	},
	"Passport": {
		"last_name", "first_name", "middle_name", "passport_no", "ppt_type",
		"issued_date", "issued_location", "expire_date", "nationality",
		"birth_date", "issuing_country", "issuing_authority",
	},
}

// Bootstrap seeds the role-based defaults for a freshly provisioned org
// wallet. The trustee publishes the shared schemas, issues against the
// identity-style ones, and registers the standard proof templates; every
// other org gets its own demo schema plus cred defs on the shared defaults.
func Bootstrap(ctx context.Context, sess vcx.Session, walletName, orgRole string) (err error) {
	defer err2.Handle(&err, "bootstrap registry")

	if orgRole == RoleTrustee {
		return bootstrapTrustee(ctx, sess, walletName)
	}
	return bootstrapOrg(ctx, sess, walletName)
}

func bootstrapTrustee(ctx context.Context, sess vcx.Session, walletName string) (err error) {
	defer err2.Handle(&err)

	for name, attrs := range defaultSchemas {
		try.To1(CreateSchema(ctx, sess, walletName, name, randomSchemaVersion(), attrs))
	}

	// the trustee itself issues the identity-style credentials
	for _, name := range []string{"Driver-License", "Passport"} {
		schema, found := try.To2(storage.SchemaRepByName(name))
		if !found {
			return fmt.Errorf("default schema %s: %w", name, vcx.ErrNotFound)
		}
		try.To1(CreateCredDef(ctx, sess, walletName,
			schema, schema.Name+"-"+walletName, schema.Template))
	}

	try.To1(CreateProofReqTemplate("Proof of Age", "Proof of age over a threshold",
		[]vcx.ProofAttr{{Name: "name"}},
		[]vcx.ProofPredicate{{Name: "age", PType: ">=", PValue: 18}}))
	try.To1(CreateProofReqTemplate("Proof of Education", "Proof of a completed degree",
		[]vcx.ProofAttr{{Name: "first_name"}, {Name: "last_name"}, {Name: "degree"}, {Name: "status"}},
		nil))
	try.To1(CreateProofReqTemplate("Proof of Income", "Proof of employment and salary",
		[]vcx.ProofAttr{{Name: "first_name"}, {Name: "last_name"}, {Name: "employee_status"}},
		[]vcx.ProofPredicate{{Name: "salary", PType: ">=", PValue: 0}}))

	glog.V(1).Infoln("trustee defaults seeded for", walletName)
	return nil
}

func bootstrapOrg(ctx context.Context, sess vcx.Session, walletName string) (err error) {
	defer err2.Handle(&err)

	// a schema unique to this org, same shape as the Alice/Faber demo
	ownSchema := try.To1(CreateSchema(ctx, sess, walletName,
		"schema_"+walletName, randomSchemaVersion(),
		[]string{"name", "date", "degree", "age"}))
	try.To1(CreateCredDef(ctx, sess, walletName,
		ownSchema, "creddef_"+walletName, ownSchema.Template))

	// cred defs on the shared defaults the trustee published
	for _, name := range []string{"Transcript", "Job-Certificate"} {
		schema, found := try.To2(storage.SchemaRepByName(name))
		if !found {
			glog.Warningf("default schema %s not seeded yet, skipping cred def", name)
			continue
		}
		try.To1(CreateCredDef(ctx, sess, walletName,
			schema, schema.Name+"-"+walletName, schema.Template))
	}

	glog.V(1).Infoln("org defaults seeded for", walletName)
	return nil
}
