package lendbook

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The snapshot is one JSON object with the book currency and four named
// collections: people, accounts (exactly one element), investments and loans.
// All amounts are plain numbers; the currency is a book-level property and is
// restored onto every amount when decoding. The readable version of the format
// is summarized by a few types.

type jentry struct {
	ID     ID     `json:"id"`
	Amount Money  `json:"amount"`
	Date   Date   `json:"date"`
	Notes  string `json:"notes,omitempty"`
}

type jperson struct {
	ID       ID       `json:"id"`
	Name     string   `json:"name"`
	Received []jentry `json:"received"`
	Returned []jentry `json:"returned"`
}

type jaccountEntry struct {
	ID          ID     `json:"id"`
	Kind        Kind   `json:"kind"`
	Amount      Money  `json:"amount"`
	Date        Date   `json:"date"`
	Description string `json:"description,omitempty"`
	Person      ID     `json:"person,omitempty"`
	Loan        ID     `json:"loan,omitempty"`
	Investment  ID     `json:"investment,omitempty"`
}

type jaccount struct {
	Balance Money           `json:"balance"`
	Entries []jaccountEntry `json:"entries"`
}

type jlogEntry struct {
	ID     ID     `json:"id"`
	Person ID     `json:"person"`
	Kind   Kind   `json:"kind"`
	Amount Money  `json:"amount"`
	Date   Date   `json:"date"`
	Notes  string `json:"notes,omitempty"`
}

type jcontributor struct {
	Person ID    `json:"person"`
	Amount Money `json:"amount"`
	Since  Date  `json:"since"`
}

type jinvestment struct {
	ID           ID             `json:"id"`
	Name         string         `json:"name"`
	Total        Money          `json:"total"`
	Created      Date           `json:"created"`
	Contributors []jcontributor `json:"contributors"`
	Log          []jlogEntry    `json:"log"`
}

type jloan struct {
	ID        ID       `json:"id"`
	Name      string   `json:"name"`
	Given     []jentry `json:"given"`
	Recovered []jentry `json:"recovered"`
}

type jbook struct {
	Currency    string        `json:"currency"`
	People      []jperson     `json:"people"`
	Accounts    []jaccount    `json:"accounts"`
	Investments []jinvestment `json:"investments"`
	Loans       []jloan       `json:"loans"`
}

func encodeEntries(seq []Entry) []jentry {
	out := make([]jentry, 0, len(seq))
	for _, e := range seq {
		out = append(out, jentry{ID: e.ID, Amount: e.Amount, Date: e.Date, Notes: e.Notes})
	}
	return out
}

func decodeEntries(seq []jentry, currency string) []Entry {
	var out []Entry
	for _, e := range seq {
		out = append(out, Entry{ID: e.ID, Amount: e.Amount.in(currency), Date: e.Date, Notes: e.Notes})
	}
	return out
}

// EncodeBook writes the whole book as one indented JSON snapshot. Field order
// is fixed so repeated exports of the same state are byte identical.
func EncodeBook(w io.Writer, b *Book) error {
	decimal.MarshalJSONWithoutQuotes = true

	people := make([]json.Marshaler, 0, len(b.people))
	for _, p := range b.people {
		pw := &jsonObjectWriter{}
		pw.EmbedFrom(jperson{ID: p.ID, Name: p.Name, Received: encodeEntries(p.Received), Returned: encodeEntries(p.Returned)})
		pw.Optional("netOwed", p.netOwed)
		people = append(people, pw)
	}

	account := jaccount{Balance: b.account.Balance}
	for _, e := range b.account.Entries {
		account.Entries = append(account.Entries, jaccountEntry{
			ID: e.ID, Kind: e.Kind, Amount: e.Amount, Date: e.Date,
			Description: e.Description, Person: e.Person, Loan: e.Loan, Investment: e.Investment,
		})
	}

	investments := make([]jinvestment, 0, len(b.investments))
	for _, v := range b.investments {
		jv := jinvestment{ID: v.ID, Name: v.Name, Total: v.Total, Created: v.Created}
		for _, h := range b.Contributors(v.ID) {
			jv.Contributors = append(jv.Contributors, jcontributor{Person: h.Person, Amount: h.Amount, Since: h.Since})
		}
		for _, le := range v.Log {
			jv.Log = append(jv.Log, jlogEntry{ID: le.ID, Person: le.Person, Kind: le.Kind, Amount: le.Amount, Date: le.Date, Notes: le.Notes})
		}
		investments = append(investments, jv)
	}

	loans := make([]jloan, 0, len(b.loans))
	for _, l := range b.loans {
		loans = append(loans, jloan{ID: l.ID, Name: l.Name, Given: encodeEntries(l.Given), Recovered: encodeEntries(l.Recovered)})
	}

	root := &jsonObjectWriter{}
	root.Append("currency", b.currency)
	root.Append("people", people)
	root.Append("accounts", []jaccount{account})
	root.Append("investments", investments)
	root.Append("loans", loans)

	data, err := json.MarshalIndent(root, "", " ")
	if err != nil {
		return fmt.Errorf("cannot encode book: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write book snapshot: %w", err)
	}
	return nil
}

// DecodeBook reads a snapshot back into a live book. Every amount is tagged
// with the snapshot currency, the holdings table is rebuilt from the stored
// contributor lists, and the id sequence resumes above the highest restored
// id so fresh ids never collide.
func DecodeBook(r io.Reader) (*Book, error) {
	var jb jbook
	dec := json.NewDecoder(r)
	if err := dec.Decode(&jb); err != nil {
		return nil, fmt.Errorf("cannot parse book snapshot: %w", err)
	}

	b := NewBook(jb.Currency)
	cur := b.currency

	for _, jp := range jb.People {
		p := &Person{ID: jp.ID, Name: jp.Name, Received: decodeEntries(jp.Received, cur), Returned: decodeEntries(jp.Returned, cur)}
		b.people = append(b.people, p)
		b.bumpSeq(p.ID)
		for _, e := range p.Received {
			b.bumpSeq(e.ID)
		}
		for _, e := range p.Returned {
			b.bumpSeq(e.ID)
		}
	}

	for _, jl := range jb.Loans {
		l := &Loan{ID: jl.ID, Name: jl.Name, Given: decodeEntries(jl.Given, cur), Recovered: decodeEntries(jl.Recovered, cur)}
		b.loans = append(b.loans, l)
		b.bumpSeq(l.ID)
		for _, e := range l.Given {
			b.bumpSeq(e.ID)
		}
		for _, e := range l.Recovered {
			b.bumpSeq(e.ID)
		}
	}

	for _, jv := range jb.Investments {
		v := &Investment{ID: jv.ID, Name: jv.Name, Total: jv.Total.in(cur), Created: jv.Created}
		for _, le := range jv.Log {
			v.Log = append(v.Log, InvestmentEntry{ID: le.ID, Person: le.Person, Kind: le.Kind, Amount: le.Amount.in(cur), Date: le.Date, Notes: le.Notes})
			b.bumpSeq(le.ID)
		}
		b.investments = append(b.investments, v)
		b.bumpSeq(v.ID)
		for _, c := range jv.Contributors {
			b.holdings = append(b.holdings, &Holding{Person: c.Person, Investment: v.ID, Amount: c.Amount.in(cur), Since: c.Since})
		}
	}

	if len(jb.Accounts) > 0 {
		ja := jb.Accounts[0]
		b.account.Balance = ja.Balance.in(cur)
		for _, je := range ja.Entries {
			b.account.Entries = append(b.account.Entries, AccountEntry{
				ID: je.ID, Kind: je.Kind, Amount: je.Amount.in(cur), Date: je.Date,
				Description: je.Description, Person: je.Person, Loan: je.Loan, Investment: je.Investment,
			})
			b.bumpSeq(je.ID)
		}
	}

	// Warm the display caches.
	for _, p := range b.people {
		b.NetOwed(p)
	}
	for _, l := range b.loans {
		b.NetReceivable(l)
	}
	return b, nil
}
