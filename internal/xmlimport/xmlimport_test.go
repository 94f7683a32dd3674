package xmlimport

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mwehrli/finview/internal/models"
	"mwehrli/finview/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStatement = `<?xml version="1.0" encoding="UTF-8"?>
<Document>
  <BkToCstmrStmt>
    <Stmt>
      <Acct>
        <Id>
          <IBAN>CH9300762011623852957</IBAN>
        </Id>
      </Acct>
      <Bal>
        <Tp><CdOrPrtry><Cd>OPBD</Cd></CdOrPrtry></Tp>
        <Amt Ccy="CHF">1000.00</Amt>
      </Bal>
      <Bal>
        <Tp><CdOrPrtry><Cd>CLBD</Cd></CdOrPrtry></Tp>
        <Amt Ccy="CHF">1540.50</Amt>
      </Bal>
      <Ntry>
        <Amt Ccy="CHF">54.20</Amt>
        <CdtDbtInd>DBIT</CdtDbtInd>
        <AcctSvcrRef>REF-1</AcctSvcrRef>
        <BookgDt><Dt>2026-01-15</Dt></BookgDt>
        <ValDt><Dt>2026-01-16</Dt></ValDt>
        <NtryDtls>
          <TxDtls>
            <RltdPties>
              <Cdtr><Nm>Migros</Nm></Cdtr>
            </RltdPties>
            <RmtInf><Ustrd>Groceries</Ustrd></RmtInf>
          </TxDtls>
        </NtryDtls>
      </Ntry>
      <Ntry>
        <Amt Ccy="CHF">5500.00</Amt>
        <CdtDbtInd>CRDT</CdtDbtInd>
        <BookgDt><Dt>2026-01-31</Dt></BookgDt>
        <NtryDtls>
          <TxDtls>
            <RltdPties>
              <Dbtr><Nm>Employer AG</Nm></Dbtr>
            </RltdPties>
          </TxDtls>
        </NtryDtls>
      </Ntry>
    </Stmt>
  </BkToCstmrStmt>
</Document>`

func writeTempXML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestValidateFormat(t *testing.T) {
	valid := writeTempXML(t, sampleStatement)
	ok, err := ValidateFormat(valid)
	require.NoError(t, err)
	assert.True(t, ok)

	other := writeTempXML(t, `<?xml version="1.0"?><Other><Data/></Other>`)
	ok, err = ValidateFormat(other)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestImportFile(t *testing.T) {
	path := writeTempXML(t, sampleStatement)

	stmt, err := ImportFile(path, "acct-1")
	require.NoError(t, err)

	assert.Equal(t, "CH9300762011623852957", stmt.IBAN)
	assert.Equal(t, "CHF", stmt.ClosingBalance.Currency)
	assert.True(t, stmt.ClosingBalance.Amount.Equal(decimal.NewFromFloat(1540.50)))

	require.Len(t, stmt.Transactions, 2)

	debit := stmt.Transactions[0]
	assert.Equal(t, "acct-1", debit.AccountID)
	assert.Equal(t, "Migros", debit.Party)
	assert.Equal(t, "Groceries", debit.Description)
	assert.Equal(t, "REF-1", debit.Reference)
	assert.Equal(t, models.DirectionDebit, debit.Direction)
	assert.True(t, debit.Amount.Amount.Equal(decimal.NewFromFloat(-54.20)))
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), debit.Date)
	assert.Equal(t, time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC), debit.ValueDate)

	credit := stmt.Transactions[1]
	assert.Equal(t, "Employer AG", credit.Party)
	assert.Equal(t, models.DirectionCredit, credit.Direction)
	assert.True(t, credit.Amount.Amount.Equal(decimal.NewFromInt(5500)))
}

func TestImportFileRejectsNonStatement(t *testing.T) {
	path := writeTempXML(t, `<?xml version="1.0"?><Other><Data/></Other>`)

	_, err := ImportFile(path, "acct-1")
	var invalid *parsererror.InvalidFormatError
	assert.ErrorAs(t, err, &invalid)
}
