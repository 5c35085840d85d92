package sqlinline

const QDonationStats = `--sql d9c0fd0d-3b1c-4abe-acb2-cea9a0644623
select
    coalesce(sum(amount_int) filter (where status = 'paid'), 0)::bigint as total_raised,
    count(*) filter (where status = 'paid') as paid_count,
    count(*) filter (where status = 'created') as created_count,
    count(*) filter (where status = 'failed') as failed_count,
    count(*) filter (where status = 'paid' and paid_at > now() - interval '24 hours') as paid_last_24h
from donations;
`
