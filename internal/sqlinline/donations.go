package sqlinline

const QInsertDonation = `--sql e163af80-02c3-4305-b71b-0e3ad5bc96fb
insert into donations(id, order_id, donor_name, email, amount_int, currency, status, properties, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, $4::bigint, $5::text, 'created', coalesce($6::jsonb, '{}'::jsonb), now())
returning id;
`

const QSelectDonationByOrderID = `--sql 109b8ed1-c2d5-4188-84b1-197889288099
select id, order_id, payment_id, signature, donor_name, email, amount_int, currency, status, created_at, paid_at
from donations
where order_id = $1::text
limit 1;
`

const QMarkDonationPaid = `--sql 01135147-0e7c-4d49-9439-79430f6df280
update donations
set payment_id = $2::text, signature = $3::text, status = 'paid', paid_at = $4::timestamptz
where order_id = $1::text and status = 'created';
`

const QMarkDonationFailed = `--sql 9bc3eddc-06cc-4236-9339-43319a4f3589
update donations
set signature = nullif($2::text, ''), status = 'failed'
where order_id = $1::text and status = 'created';
`

const QListPaidDonations = `--sql d0b98fb1-f0f3-40e3-91e7-45372c1697b4
select id, order_id, donor_name, amount_int, currency, status, created_at, paid_at
from donations
where status = 'paid'
order by paid_at desc
limit $1::int;
`

const QExpireStaleDonations = `--sql a82afd72-df68-482c-af1e-1209e2dfbd2d
update donations
set status = 'failed'
where status = 'created' and created_at < $1::timestamptz;
`
